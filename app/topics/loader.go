package topics

import (
	"embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed topics.yml
var defaultTaxonomy embed.FS

// Load reads the taxonomy from path, falling back to the embedded default
// when path is empty. Validation failures are returned as errors and must
// abort startup: running with a malformed label table silently produces
// wrong scores.
func Load(path string) (*Taxonomy, error) {
	var data []byte
	var err error

	if path == "" {
		data, err = defaultTaxonomy.ReadFile("topics.yml")
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded taxonomy: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
		}
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy YAML: %w", err)
	}

	if err := validate(&tax); err != nil {
		return nil, fmt.Errorf("invalid taxonomy: %w", err)
	}

	slog.Debug("Taxonomy loaded",
		"labels", len(tax.Labels),
		"sub_topics", len(tax.SubTopicNames()),
		"frameworks", len(tax.Frameworks),
		"score_floors", len(tax.Policy.ScoreFloors))

	return &tax, nil
}

func validate(tax *Taxonomy) error {
	if tax.HypothesisTemplate == "" {
		return fmt.Errorf("hypothesis template is required")
	}
	if tax.ConfidenceThreshold <= 0 || tax.ConfidenceThreshold >= 1 {
		return fmt.Errorf("confidence threshold must be in (0,1), got %v", tax.ConfidenceThreshold)
	}

	required := []string{"Environmental", "Social", "Governance", "Other"}
	if len(tax.Labels) != len(required) {
		return fmt.Errorf("expected %d labels, got %d", len(required), len(tax.Labels))
	}
	for _, category := range required {
		if tax.PromptFor(category) == "" {
			return fmt.Errorf("missing label for category %q", category)
		}
	}

	substantive := required[:3]
	if len(tax.SubTopics) != len(substantive) {
		return fmt.Errorf("expected sub-topic tables for %d categories, got %d", len(substantive), len(tax.SubTopics))
	}
	for _, category := range substantive {
		cst := tax.SubTopicsFor(category)
		if cst == nil {
			return fmt.Errorf("missing sub-topic table for category %q", category)
		}
		if len(cst.Topics) != 3 {
			return fmt.Errorf("category %q must define exactly 3 sub-topics, got %d", category, len(cst.Topics))
		}
		defaultFound := false
		for _, st := range cst.Topics {
			if st.Name == "" {
				return fmt.Errorf("category %q has a sub-topic without a name", category)
			}
			if st.Name == cst.Default {
				defaultFound = true
			}
		}
		if !defaultFound {
			return fmt.Errorf("category %q default sub-topic %q is not in its sub-topic list", category, cst.Default)
		}
	}

	for i, fw := range tax.Frameworks {
		if fw.Code == "" || fw.Category == "" {
			return fmt.Errorf("framework at index %d must have a category and a code", i)
		}
		if len(fw.Keywords) == 0 {
			return fmt.Errorf("framework %q must have at least one keyword", fw.Code)
		}
	}

	for company, floor := range tax.Policy.ScoreFloors {
		if floor < 0 || floor > 100 {
			return fmt.Errorf("score floor for %q must be in [0,100], got %d", company, floor)
		}
	}

	if tax.Policy.Heatmap.ActivityWeight <= 0 || tax.Policy.Heatmap.NegativeWeight <= 0 {
		return fmt.Errorf("heatmap weights must be positive")
	}
	if tax.Policy.Severity.High <= tax.Policy.Severity.Medium || tax.Policy.Severity.Medium <= 0 {
		return fmt.Errorf("severity thresholds must satisfy high > medium > 0")
	}

	return nil
}
