package risk

import (
	"strings"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
	"github.com/heyy-Haarsh/ReputeX/app/topics"
)

// GeneralOtherSubTopic is the sentinel sub-topic for items in the Other
// category. It never appears in the heatmap.
const GeneralOtherSubTopic = "General Other"

// Mapper refines each analyzed item's coarse category into one of the fixed
// fine-grained sub-topics, and computes the activity+negativity heatmap.
type Mapper struct {
	tax *topics.Taxonomy
}

func NewMapper(tax *topics.Taxonomy) *Mapper {
	return &Mapper{tax: tax}
}

// Run fills SubTopic on every item and returns the same slice. Items in a
// substantive pillar are matched against that pillar's keyword table,
// first-match-wins in table order; no match assigns the pillar's default
// sub-topic. Items in the Other category get the sentinel sub-topic.
func (m *Mapper) Run(items []esg.AnalyzedItem) []esg.AnalyzedItem {
	for i := range items {
		items[i].SubTopic = m.subTopicFor(items[i])
	}
	return items
}

func (m *Mapper) subTopicFor(item esg.AnalyzedItem) string {
	cst := m.tax.SubTopicsFor(item.Category)
	if cst == nil {
		return GeneralOtherSubTopic
	}

	text := strings.ToLower(item.Text)
	for _, st := range cst.Topics {
		for _, keyword := range st.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				return st.Name
			}
		}
	}

	return cst.Default
}

// Heatmap computes, for every fixed sub-topic label, the risk magnitude
//
//	activity_weight × Σ trust(all items) + negative_weight × Σ trust(negative items)
//
// The negative weight is materially larger than the activity weight so the
// map signals concentration of negative coverage rather than raw volume,
// while active-but-neutral sub-topics stay visible. Untouched sub-topics are
// present with value 0.0; the key set is always the full fixed label set.
func (m *Mapper) Heatmap(items []esg.AnalyzedItem) map[string]float64 {
	weights := m.tax.Policy.Heatmap

	heatmap := make(map[string]float64)
	for _, name := range m.tax.SubTopicNames() {
		heatmap[name] = 0.0
	}

	for _, item := range items {
		if _, ok := heatmap[item.SubTopic]; !ok {
			continue
		}
		value := weights.ActivityWeight * item.TrustScore
		if item.Sentiment == esg.SentimentNegative {
			value += weights.NegativeWeight * item.TrustScore
		}
		heatmap[item.SubTopic] += value
	}

	return heatmap
}
