package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/heyy-Haarsh/ReputeX/app/classifier"
	"github.com/heyy-Haarsh/ReputeX/app/esg"
	"github.com/heyy-Haarsh/ReputeX/app/risk"
	"github.com/heyy-Haarsh/ReputeX/app/topics"
)

const (
	NewsModuleName   = "Official News (ESG)"
	SocialModuleName = "Social (Reddit)"
)

// Analyzer runs the full one-shot analysis pipeline for a company name:
// parallel source fan-out, deduplication, per-item classification, weighted
// scoring, sub-topic mapping and risk summary generation. All collaborators
// are injected; the Analyzer holds no ambient global state.
type Analyzer struct {
	newsSources     []esg.Source
	socialSources   []esg.Source
	executiveFinder esg.ExecutiveFinder

	sentiment       classifier.SentimentClassifier
	topicClassifier classifier.TopicClassifier

	taxonomy   *topics.Taxonomy
	dedup      *esg.Deduplicator
	scorer     *esg.Scorer
	mapper     *risk.Mapper
	summarizer *risk.Summarizer

	sourceTimeout time.Duration
	workerCount   int
}

// New wires an Analyzer. executiveFinder may be nil to disable executive
// enrichment.
func New(taxonomy *topics.Taxonomy, sentiment classifier.SentimentClassifier,
	topicClassifier classifier.TopicClassifier, newsSources, socialSources []esg.Source,
	executiveFinder esg.ExecutiveFinder, sourceTimeout time.Duration, workerCount int) *Analyzer {

	if workerCount < 1 {
		workerCount = 1
	}

	return &Analyzer{
		newsSources:     newsSources,
		socialSources:   socialSources,
		executiveFinder: executiveFinder,
		sentiment:       sentiment,
		topicClassifier: topicClassifier,
		taxonomy:        taxonomy,
		dedup:           esg.NewDeduplicator(),
		scorer:          esg.NewScorer(taxonomy.Policy.ScoreFloors),
		mapper:          risk.NewMapper(taxonomy),
		summarizer:      risk.NewSummarizer(taxonomy),
		sourceTimeout:   sourceTimeout,
		workerCount:     workerCount,
	}
}

// Analyze performs the one-shot analysis for company and returns the final
// score structure. Partial source failures degrade coverage; total data
// absence returns explicit neutral defaults, never an error.
func (a *Analyzer) Analyze(ctx context.Context, company string) (esg.ScoreResult, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return esg.ScoreResult{}, fmt.Errorf("company name is required")
	}

	slog.Info("Starting analysis", "company", company)

	general := a.fetchGeneral(ctx, company)
	executive := a.fetchExecutiveCoverage(ctx, company)

	working := a.dedup.Run(general, executive)
	slog.Info("Working set assembled",
		"company", company,
		"fetched", len(general)+len(executive),
		"deduplicated", len(working))

	items := a.classifyAll(ctx, working)
	if len(items) == 0 {
		slog.Info("No analyzable items, returning neutral defaults", "company", company)
		return a.neutralResult(company), nil
	}

	items = a.mapper.Run(items)

	var newsFeed, socialFeed []esg.AnalyzedItem
	for _, item := range items {
		if item.SocialMedia {
			socialFeed = append(socialFeed, item)
		} else {
			newsFeed = append(newsFeed, item)
		}
	}

	result := esg.ScoreResult{
		CompanyName:  company,
		OverallScore: a.scorer.OverallScore(company, items),
		Scores:       a.scorer.PillarScores(items),
		Modules: []esg.Module{
			{ModuleName: NewsModuleName, Sentiment: esg.DisplaySentiment(newsFeed), Feed: emptyToSlice(newsFeed)},
			{ModuleName: SocialModuleName, Sentiment: esg.DisplaySentiment(socialFeed), Feed: emptyToSlice(socialFeed)},
		},
		Suggestions: a.summarizer.Run(items),
		RiskHeatmap: a.mapper.Heatmap(items),
	}

	slog.Info("Analysis complete",
		"company", company,
		"items", len(items),
		"overall_score", result.OverallScore)

	return result, nil
}

// fetchGeneral fans out over all company-general adapters in parallel, each
// bounded by the source timeout. A slow or failing adapter contributes an
// empty list; adapter order is preserved in the combined output.
func (a *Analyzer) fetchGeneral(ctx context.Context, company string) []esg.RawItem {
	sources := append(append([]esg.Source{}, a.newsSources...), a.socialSources...)
	perSource := make([][]esg.RawItem, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src esg.Source) {
			defer wg.Done()
			perSource[i] = a.fetchOne(ctx, src, company, "")
		}(i, src)
	}
	wg.Wait()

	var combined []esg.RawItem
	for _, items := range perSource {
		combined = append(combined, items...)
	}
	return combined
}

// fetchExecutiveCoverage resolves the company's executives and fetches
// coverage attributed to them, with discounted trust. Any failure along the
// way degrades to no executive coverage.
func (a *Analyzer) fetchExecutiveCoverage(ctx context.Context, company string) []esg.RawItem {
	if a.executiveFinder == nil || len(a.newsSources) == 0 {
		return nil
	}

	fctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	executives, err := a.executiveFinder.FindExecutives(fctx, company)
	if err != nil {
		slog.Warn("Executive lookup unavailable, continuing without it", "company", company, "error", err)
		return nil
	}
	if len(executives) == 0 {
		return nil
	}

	perExecutive := make([][]esg.RawItem, len(executives))

	var wg sync.WaitGroup
	for i, executive := range executives {
		wg.Add(1)
		go func(i int, executive esg.Executive) {
			defer wg.Done()
			query := fmt.Sprintf("%q %q", executive.Name, company)
			for _, src := range a.newsSources {
				perExecutive[i] = append(perExecutive[i], a.fetchOne(ctx, src, company, query)...)
			}
		}(i, executive)
	}
	wg.Wait()

	var combined []esg.RawItem
	for _, items := range perExecutive {
		for _, item := range items {
			item.Executive = true
			item.TrustScore *= esg.ExecutiveTrustDiscount
			combined = append(combined, item)
		}
	}
	return combined
}

func (a *Analyzer) fetchOne(ctx context.Context, src esg.Source, company, queryOverride string) []esg.RawItem {
	fctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	items, err := src.FetchItems(fctx, company, queryOverride)
	if err != nil {
		slog.Warn("Source unavailable, continuing without it", "source", src.Name(), "error", err)
		return nil
	}
	return items
}

// classifyAll runs sentiment and topic classification for every item using a
// bounded worker pool, then recombines results in input order. An item whose
// classification fails is skipped, not fatal. The caller performs all
// aggregation single-threaded over the returned set.
func (a *Analyzer) classifyAll(ctx context.Context, items []esg.RawItem) []esg.AnalyzedItem {
	results := make([]*esg.AnalyzedItem, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < a.workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				analyzed, err := a.classifyItem(ctx, items[i])
				if err != nil {
					slog.Warn("Skipping item after classification failure",
						"source", items[i].Source, "url", items[i].URL, "error", err)
					continue
				}
				results[i] = &analyzed
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	analyzed := make([]esg.AnalyzedItem, 0, len(items))
	for _, result := range results {
		if result != nil {
			analyzed = append(analyzed, *result)
		}
	}
	return analyzed
}

func (a *Analyzer) classifyItem(ctx context.Context, item esg.RawItem) (esg.AnalyzedItem, error) {
	sentiment, err := a.sentiment.ClassifySentiment(ctx, item.Text)
	if err != nil {
		return esg.AnalyzedItem{}, fmt.Errorf("sentiment classification: %w", err)
	}

	analyzed := esg.AnalyzedItem{
		RawItem:        item,
		Sentiment:      normalizeSentiment(sentiment.Label),
		SentimentScore: sentiment.Score,
	}

	// Platform content is social-interest by construction; the topic call
	// is skipped entirely.
	if item.SocialMedia {
		analyzed.Category = esg.CategorySocial
		analyzed.Explanation = "Platform content assigned to Social coverage."
		return analyzed, nil
	}

	ranked, err := a.topicClassifier.ClassifyTopic(ctx, item.Text, a.taxonomy.Prompts(), a.taxonomy.HypothesisTemplate)
	if err != nil {
		return esg.AnalyzedItem{}, fmt.Errorf("topic classification: %w", err)
	}
	if len(ranked) == 0 {
		return esg.AnalyzedItem{}, fmt.Errorf("topic classification returned no ranking")
	}

	top := ranked[0]
	if top.Score < a.taxonomy.ConfidenceThreshold {
		analyzed.Category = esg.CategoryOther
		analyzed.Explanation = fmt.Sprintf("Low confidence (%.0f%%) for topic classification. Defaulted to Other.", top.Score*100)
		return analyzed, nil
	}

	category := a.taxonomy.CategoryFor(top.Label)
	if category == "" {
		return esg.AnalyzedItem{}, fmt.Errorf("classifier returned unknown label %q", top.Label)
	}

	analyzed.Category = category
	analyzed.Explanation = fmt.Sprintf("Classified as '%s' with %.0f%% confidence.", category, top.Score*100)
	return analyzed, nil
}

// neutralResult is the defined terminal state for an empty working set:
// explicit neutral midpoint scores, empty feeds and an all-zero heatmap.
// Consumers expect numeric scores, never null.
func (a *Analyzer) neutralResult(company string) esg.ScoreResult {
	return esg.ScoreResult{
		CompanyName:  company,
		OverallScore: esg.NeutralMidpoint,
		Scores: esg.PillarScores{
			Environmental: esg.NeutralMidpoint,
			Social:        esg.NeutralMidpoint,
			Governance:    esg.NeutralMidpoint,
		},
		Modules: []esg.Module{
			{ModuleName: NewsModuleName, Sentiment: "Neutral", Feed: []esg.AnalyzedItem{}},
			{ModuleName: SocialModuleName, Sentiment: "Neutral", Feed: []esg.AnalyzedItem{}},
		},
		Suggestions: []string{fmt.Sprintf("No public coverage found for %s. Showing neutral default scores.", company)},
		RiskHeatmap: a.mapper.Heatmap(nil),
	}
}

func normalizeSentiment(label string) esg.Sentiment {
	switch strings.ToLower(label) {
	case "positive":
		return esg.SentimentPositive
	case "negative":
		return esg.SentimentNegative
	default:
		return esg.SentimentNeutral
	}
}

func emptyToSlice(items []esg.AnalyzedItem) []esg.AnalyzedItem {
	if items == nil {
		return []esg.AnalyzedItem{}
	}
	return items
}
