package esg

import (
	"context"
)

// Sentiment is the classifier's polarity label for a single item.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Fixed category labels. Every analyzed item carries exactly one of these;
// free-text categories are never emitted.
const (
	CategoryEnvironmental = "Environmental"
	CategorySocial        = "Social"
	CategoryGovernance    = "Governance"
	CategoryOther         = "Other"
)

// Trust-score policy. A source on the curated trusted-outlet allowlist gets
// full weight; social-media and executive-attributed coverage is discounted.
const (
	DefaultTrustScore      = 0.5
	TrustedOutletScore     = 1.0
	SocialTrustScore       = 0.6
	ExecutiveTrustDiscount = 0.8
)

// RawItem is a single normalized signal produced by a source adapter.
// Immutable after creation.
type RawItem struct {
	Source     string  `json:"source"`
	Text       string  `json:"text"`
	URL        string  `json:"url"`
	TrustScore float64 `json:"trust_score"`

	// Provenance flags set by adapters, not part of the wire contract.
	SocialMedia bool `json:"-"`
	Executive   bool `json:"-"`
}

// AnalyzedItem is a RawItem after sentiment and topic classification.
type AnalyzedItem struct {
	RawItem
	Sentiment      Sentiment `json:"sentiment"`
	SentimentScore float64   `json:"sentiment_score"`
	Category       string    `json:"category"`
	Explanation    string    `json:"explanation"`
	SubTopic       string    `json:"sub_topic,omitempty"`
}

// PillarScores holds the per-pillar reputation scores, each in [0,100].
type PillarScores struct {
	Environmental int `json:"environmental"`
	Social        int `json:"social"`
	Governance    int `json:"governance"`
}

// Module is a presentation grouping of analyzed items (news feed, social feed)
// with a cosmetic overall sentiment label.
type Module struct {
	ModuleName string         `json:"module_name"`
	Sentiment  string         `json:"sentiment"`
	Feed       []AnalyzedItem `json:"feed"`
}

// ScoreResult is the complete analysis output for one company. It is a pure
// computed value: assembled once per request and never mutated after return.
// Field names and nesting are consumed by presentation layers as-is.
type ScoreResult struct {
	CompanyName  string             `json:"company_name"`
	OverallScore int                `json:"overall_score"`
	Scores       PillarScores       `json:"scores"`
	Modules      []Module           `json:"modules"`
	Suggestions  []string           `json:"suggestions"`
	RiskHeatmap  map[string]float64 `json:"risk_heatmap"`
}

// Executive identifies a company officer surfaced by the knowledge-graph lookup.
type Executive struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Source is a single upstream adapter. Implementations must tolerate missing
// credentials by returning an empty list, and must honor ctx cancellation.
type Source interface {
	Name() string
	FetchItems(ctx context.Context, company, queryOverride string) ([]RawItem, error)
}

// ExecutiveFinder resolves a company name to its known executives.
// Optional enrichment; an empty result is a normal outcome.
type ExecutiveFinder interface {
	FindExecutives(ctx context.Context, company string) ([]Executive, error)
}
