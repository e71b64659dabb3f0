package risk

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
	"github.com/heyy-Haarsh/ReputeX/app/topics"
)

const (
	maxRiskCategories = 3

	noRiskMessage      = "No major reputation risks detected in current public coverage. Maintain existing disclosure practices."
	closingSuggestion  = "Review the flagged areas above and strengthen the corresponding public disclosures before the next reporting cycle."
	quoteExcerptLength = 120
)

// Summarizer turns the analyzed item set into severity-tagged, human-readable
// risk narratives. Deterministic text generation from numeric inputs; no
// model call.
type Summarizer struct {
	tax   *topics.Taxonomy
	title cases.Caser
}

func NewSummarizer(tax *topics.Taxonomy) *Summarizer {
	return &Summarizer{
		tax:   tax,
		title: cases.Title(language.English),
	}
}

type categoryRisk struct {
	category string
	weight   float64
	count    int
	sample   esg.AnalyzedItem
}

// Run ranks categories by their trust-weighted negative impact and emits one
// narrative line per top category plus a closing recommendation. With no
// negative items it returns the single reassuring message; that is a terminal
// state, not an error.
func (s *Summarizer) Run(items []esg.AnalyzedItem) []string {
	risks := s.collect(items)
	if len(risks) == 0 {
		return []string{noRiskMessage}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].weight > risks[j].weight
	})
	if len(risks) > maxRiskCategories {
		risks = risks[:maxRiskCategories]
	}

	lines := make([]string, 0, len(risks)+1)
	for _, risk := range risks {
		lines = append(lines, s.narrative(risk))
	}
	lines = append(lines, closingSuggestion)

	return lines
}

// collect groups negative-sentiment items by category, summing trust score as
// the weighted-impact metric and keeping the highest-trust item as the
// illustrative sample.
func (s *Summarizer) collect(items []esg.AnalyzedItem) []categoryRisk {
	byCategory := make(map[string]*categoryRisk)
	var order []string

	for _, item := range items {
		if item.Sentiment != esg.SentimentNegative {
			continue
		}

		risk, ok := byCategory[item.Category]
		if !ok {
			risk = &categoryRisk{category: item.Category, sample: item}
			byCategory[item.Category] = risk
			order = append(order, item.Category)
		}

		risk.weight += item.TrustScore
		risk.count++
		if item.TrustScore > risk.sample.TrustScore {
			risk.sample = item
		}
	}

	risks := make([]categoryRisk, 0, len(order))
	for _, category := range order {
		risks = append(risks, *byCategory[category])
	}
	return risks
}

func (s *Summarizer) narrative(risk categoryRisk) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s: %d negative report(s), weighted impact %.1f.",
		s.title.String(s.severity(risk.weight)), risk.category, risk.count, risk.weight)

	fmt.Fprintf(&b, " Example: %q (%s).", excerpt(risk.sample.Text), risk.sample.Source)

	if codes := s.frameworkCodes(risk.category, risk.sample.Text); len(codes) > 0 {
		fmt.Fprintf(&b, " Implicated disclosures: %s.", strings.Join(codes, ", "))
	}

	return b.String()
}

// severity classifies a weighted impact against the fixed policy thresholds.
func (s *Summarizer) severity(weight float64) string {
	thresholds := s.tax.Policy.Severity
	switch {
	case weight >= thresholds.High:
		return "high"
	case weight >= thresholds.Medium:
		return "medium"
	default:
		return "low"
	}
}

// frameworkCodes scans text against the category's framework keyword tables
// and returns the implicated disclosure codes, in table order.
func (s *Summarizer) frameworkCodes(category, text string) []string {
	lower := strings.ToLower(text)

	var codes []string
	for _, fw := range s.tax.Frameworks {
		if fw.Category != category {
			continue
		}
		for _, keyword := range fw.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				codes = append(codes, fw.Code)
				break
			}
		}
	}
	return codes
}

func excerpt(text string) string {
	if len(text) <= quoteExcerptLength {
		return text
	}
	return strings.TrimSpace(text[:quoteExcerptLength]) + "..."
}
