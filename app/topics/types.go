package topics

// Taxonomy holds every label table and policy constant the analysis pipeline
// depends on. Loaded once at startup from YAML; a malformed table is a fatal
// configuration error, never silently patched.
type Taxonomy struct {
	HypothesisTemplate  string             `yaml:"hypothesis_template"`
	ConfidenceThreshold float64            `yaml:"confidence_threshold"`
	Labels              []Label            `yaml:"labels"`
	SubTopics           []CategorySubTopic `yaml:"sub_topics"`
	Frameworks          []Framework        `yaml:"frameworks"`
	Policy              Policy             `yaml:"policy"`
}

// Label pairs a fixed category name with the descriptive prompt handed to the
// zero-shot classifier as a candidate label.
type Label struct {
	Category string `yaml:"category"`
	Prompt   string `yaml:"prompt"`
}

// CategorySubTopic defines the fine-grained sub-topics of one pillar.
// Keyword matching is first-match-wins in table order; when keyword sets of
// two sub-topics overlap, table order is the tie-break. This is an accepted
// ambiguity carried over from the scoring policy.
type CategorySubTopic struct {
	Category string     `yaml:"category"`
	Default  string     `yaml:"default"`
	Topics   []SubTopic `yaml:"topics"`
}

type SubTopic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Framework maps keyword hits in an item's text to a disclosure-framework
// section identifier (GRI/SASB) surfaced in risk narratives.
type Framework struct {
	Category string   `yaml:"category"`
	Code     string   `yaml:"code"`
	Keywords []string `yaml:"keywords"`
}

// Policy carries the business heuristics layered on top of the statistical
// result. The score floors and heatmap weights are undocumented policy
// decisions preserved verbatim; confirm changes with stakeholders rather
// than tuning in place.
type Policy struct {
	TrustedOutlets []string           `yaml:"trusted_outlets"`
	ScoreFloors    map[string]int     `yaml:"score_floors"`
	Heatmap        HeatmapWeights     `yaml:"heatmap"`
	Severity       SeverityThresholds `yaml:"severity"`
}

type HeatmapWeights struct {
	ActivityWeight float64 `yaml:"activity_weight"`
	NegativeWeight float64 `yaml:"negative_weight"`
}

type SeverityThresholds struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
}

// PromptFor returns the classifier prompt for a category name.
func (t *Taxonomy) PromptFor(category string) string {
	for _, label := range t.Labels {
		if label.Category == category {
			return label.Prompt
		}
	}
	return ""
}

// CategoryFor maps a classifier prompt back to its category name.
func (t *Taxonomy) CategoryFor(prompt string) string {
	for _, label := range t.Labels {
		if label.Prompt == prompt {
			return label.Category
		}
	}
	return ""
}

// Prompts returns the candidate labels handed to the zero-shot classifier,
// in table order.
func (t *Taxonomy) Prompts() []string {
	prompts := make([]string, 0, len(t.Labels))
	for _, label := range t.Labels {
		prompts = append(prompts, label.Prompt)
	}
	return prompts
}

// SubTopicsFor returns the sub-topic table for a category, or nil for
// categories without one (the Other bucket).
func (t *Taxonomy) SubTopicsFor(category string) *CategorySubTopic {
	for i := range t.SubTopics {
		if t.SubTopics[i].Category == category {
			return &t.SubTopics[i]
		}
	}
	return nil
}

// SubTopicNames returns the full fixed set of sub-topic labels, in table
// order. The heatmap emits exactly this key set.
func (t *Taxonomy) SubTopicNames() []string {
	var names []string
	for _, cst := range t.SubTopics {
		for _, st := range cst.Topics {
			names = append(names, st.Name)
		}
	}
	return names
}
