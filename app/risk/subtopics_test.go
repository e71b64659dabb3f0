package risk

import (
	"testing"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
	"github.com/heyy-Haarsh/ReputeX/app/topics"
)

func loadTaxonomy(t *testing.T) *topics.Taxonomy {
	t.Helper()
	tax, err := topics.Load("")
	if err != nil {
		t.Fatalf("Failed to load taxonomy: %v", err)
	}
	return tax
}

func item(text, category string, sentiment esg.Sentiment, trust float64) esg.AnalyzedItem {
	return esg.AnalyzedItem{
		RawItem:   esg.RawItem{Source: "test", Text: text, URL: "https://example.com", TrustScore: trust},
		Sentiment: sentiment,
		Category:  category,
	}
}

func TestMapper_Run_KeywordMatch(t *testing.T) {
	mapper := NewMapper(loadTaxonomy(t))

	cases := []struct {
		text     string
		category string
		expected string
	}{
		{"Company pledges net zero carbon emissions by 2030", esg.CategoryEnvironmental, "Climate & Emissions"},
		{"Toxic waste spill contaminates local river", esg.CategoryEnvironmental, "Pollution & Waste"},
		{"Factory accused of excessive water usage near reserve", esg.CategoryEnvironmental, "Resource Use"},
		{"Workers announce strike over wage dispute", esg.CategorySocial, "Labor Practices"},
		{"Lawsuit alleges discrimination in hiring", esg.CategorySocial, "Community & Human Rights"},
		{"Product recall after customer injury reports", esg.CategorySocial, "Product & Customer Safety"},
		{"CEO under fire for bribery scandal", esg.CategoryGovernance, "Leadership & Ethics"},
		{"Regulator opens antitrust investigation", esg.CategoryGovernance, "Regulatory Compliance"},
		{"Shareholder proxy fight over dividend policy", esg.CategoryGovernance, "Shareholder Rights"},
	}

	for _, tc := range cases {
		items := mapper.Run([]esg.AnalyzedItem{item(tc.text, tc.category, esg.SentimentNeutral, 1.0)})
		if items[0].SubTopic != tc.expected {
			t.Errorf("Text %q: expected sub-topic %s, got %s", tc.text, tc.expected, items[0].SubTopic)
		}
	}
}

func TestMapper_Run_KeywordMatchIsCaseInsensitive(t *testing.T) {
	mapper := NewMapper(loadTaxonomy(t))

	items := mapper.Run([]esg.AnalyzedItem{
		item("CARBON EMISSIONS SURGE AT PLANT", esg.CategoryEnvironmental, esg.SentimentNegative, 1.0),
	})

	if items[0].SubTopic != "Climate & Emissions" {
		t.Errorf("Expected case-insensitive keyword match, got %s", items[0].SubTopic)
	}
}

func TestMapper_Run_NoMatchFallsBackToDefault(t *testing.T) {
	mapper := NewMapper(loadTaxonomy(t))

	cases := []struct {
		category string
		expected string
	}{
		{esg.CategoryEnvironmental, "Climate & Emissions"},
		{esg.CategorySocial, "Labor Practices"},
		{esg.CategoryGovernance, "Leadership & Ethics"},
	}

	for _, tc := range cases {
		items := mapper.Run([]esg.AnalyzedItem{item("Nothing keyword-shaped here", tc.category, esg.SentimentNeutral, 1.0)})
		if items[0].SubTopic != tc.expected {
			t.Errorf("Category %s: expected default sub-topic %s, got %s", tc.category, tc.expected, items[0].SubTopic)
		}
	}
}

func TestMapper_Run_OtherCategoryGetsSentinel(t *testing.T) {
	mapper := NewMapper(loadTaxonomy(t))

	items := mapper.Run([]esg.AnalyzedItem{
		item("Quarterly earnings beat expectations", esg.CategoryOther, esg.SentimentPositive, 1.0),
	})

	if items[0].SubTopic != GeneralOtherSubTopic {
		t.Errorf("Expected sentinel sub-topic for Other items, got %s", items[0].SubTopic)
	}
}

func TestMapper_Run_FirstMatchWinsInTableOrder(t *testing.T) {
	mapper := NewMapper(loadTaxonomy(t))

	// "climate" (Climate & Emissions) and "pollution" (Pollution & Waste) both
	// match; table order decides.
	items := mapper.Run([]esg.AnalyzedItem{
		item("Climate activists protest pollution levels", esg.CategoryEnvironmental, esg.SentimentNegative, 1.0),
	})

	if items[0].SubTopic != "Climate & Emissions" {
		t.Errorf("Expected first table entry to win, got %s", items[0].SubTopic)
	}
}

func TestMapper_Heatmap_FullKeySet(t *testing.T) {
	tax := loadTaxonomy(t)
	mapper := NewMapper(tax)

	heatmap := mapper.Heatmap(nil)

	names := tax.SubTopicNames()
	if len(heatmap) != len(names) {
		t.Fatalf("Expected %d heatmap keys, got %d", len(names), len(heatmap))
	}
	for _, name := range names {
		value, ok := heatmap[name]
		if !ok {
			t.Errorf("Expected heatmap key %q", name)
			continue
		}
		if value != 0.0 {
			t.Errorf("Expected zero value for untouched sub-topic %q, got %v", name, value)
		}
	}
}

func TestMapper_Heatmap_NegativeWeighting(t *testing.T) {
	mapper := NewMapper(loadTaxonomy(t))

	items := mapper.Run([]esg.AnalyzedItem{
		item("Carbon emissions reported steady", esg.CategoryEnvironmental, esg.SentimentNeutral, 1.0),
		item("Carbon emissions scandal deepens", esg.CategoryEnvironmental, esg.SentimentNegative, 1.0),
	})

	heatmap := mapper.Heatmap(items)

	// activity 1.0×(1.0+1.0) + negative 5.0×1.0 = 7.0
	if got := heatmap["Climate & Emissions"]; got != 7.0 {
		t.Errorf("Expected Climate & Emissions value 7.0, got %v", got)
	}
}

func TestMapper_Heatmap_TrustScaled(t *testing.T) {
	mapper := NewMapper(loadTaxonomy(t))

	items := mapper.Run([]esg.AnalyzedItem{
		item("Union strike enters second week", esg.CategorySocial, esg.SentimentNegative, 0.5),
	})

	heatmap := mapper.Heatmap(items)

	// (1.0 + 5.0) × 0.5 = 3.0
	if got := heatmap["Labor Practices"]; got != 3.0 {
		t.Errorf("Expected Labor Practices value 3.0, got %v", got)
	}
}

func TestMapper_Heatmap_ExcludesSentinel(t *testing.T) {
	mapper := NewMapper(loadTaxonomy(t))

	items := mapper.Run([]esg.AnalyzedItem{
		item("Routine product launch coverage", esg.CategoryOther, esg.SentimentNegative, 1.0),
	})

	heatmap := mapper.Heatmap(items)

	if _, ok := heatmap[GeneralOtherSubTopic]; ok {
		t.Errorf("Expected sentinel sub-topic to be absent from heatmap")
	}
	for name, value := range heatmap {
		if value != 0.0 {
			t.Errorf("Expected Other items to contribute nothing, got %v for %q", value, name)
		}
	}
}
