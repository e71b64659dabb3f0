package esg

import (
	"math"
	"strings"
)

// Scoring constants. NeutralScoringBias is a deliberate policy choice, not a
// statistical one: abundant neutral coverage should not drag a genuinely
// mixed-positive company toward 50, so neutral sentiment contributes a small
// positive value during score aggregation. The unbiased mapping is used only
// for the cosmetic per-module sentiment label.
const (
	NeutralScoringBias = 0.2
	DisplayTieBand     = 0.15
	NeutralMidpoint    = 50

	minTrustWeight = 1e-9
)

// Scorer computes trust-weighted reputation scores and applies the
// score-floor policy table.
type Scorer struct {
	floors map[string]int
}

// NewScorer builds a Scorer. floors maps company names (matched
// case-insensitively) to a minimum guaranteed overall score.
func NewScorer(floors map[string]int) *Scorer {
	normalized := make(map[string]int, len(floors))
	for company, floor := range floors {
		normalized[strings.ToLower(strings.TrimSpace(company))] = floor
	}
	return &Scorer{floors: normalized}
}

// OverallScore computes the trust-weighted overall score for the full item
// set and applies the company's score floor, if one is configured.
func (s *Scorer) OverallScore(company string, items []AnalyzedItem) int {
	score := weightedScore(items, "")

	if floor, ok := s.floors[strings.ToLower(strings.TrimSpace(company))]; ok && score < floor {
		return floor
	}
	return score
}

// PillarScores computes the per-pillar scores using the same weighted
// aggregation restricted to each pillar's items. A pillar with no items
// defaults to the neutral midpoint, never null.
func (s *Scorer) PillarScores(items []AnalyzedItem) PillarScores {
	return PillarScores{
		Environmental: weightedScore(items, CategoryEnvironmental),
		Social:        weightedScore(items, CategorySocial),
		Governance:    weightedScore(items, CategoryGovernance),
	}
}

// DisplaySentiment returns the cosmetic sentiment label for a feed: an
// unweighted, unbiased mean with a tie-band around zero. Independent of the
// scoring aggregate.
func DisplaySentiment(items []AnalyzedItem) string {
	if len(items) == 0 {
		return "Neutral"
	}

	var sum float64
	for _, item := range items {
		switch item.Sentiment {
		case SentimentPositive:
			sum += 1
		case SentimentNegative:
			sum -= 1
		}
	}

	average := sum / float64(len(items))
	switch {
	case average > DisplayTieBand:
		return "Positive"
	case average < -DisplayTieBand:
		return "Negative"
	default:
		return "Neutral"
	}
}

// weightedScore computes round(((avg+1)/2)*100) where avg is the
// trust-weighted mean of the biased sentiment values over items matching
// category (empty category means all items). Zero total trust weight yields
// the neutral midpoint.
func weightedScore(items []AnalyzedItem, category string) int {
	var weightedSum, trustSum float64
	for _, item := range items {
		if category != "" && item.Category != category {
			continue
		}
		weightedSum += scoringValue(item.Sentiment) * item.TrustScore
		trustSum += item.TrustScore
	}

	if trustSum < minTrustWeight {
		return NeutralMidpoint
	}

	return rescale(weightedSum / trustSum)
}

// scoringValue maps a sentiment label to its biased numeric value used for
// score aggregation.
func scoringValue(sentiment Sentiment) float64 {
	switch sentiment {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	default:
		return NeutralScoringBias
	}
}

// rescale maps an average in [-1,1] to an integer score in [0,100].
func rescale(average float64) int {
	score := int(math.Round(((average + 1) / 2) * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
