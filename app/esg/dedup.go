package esg

// Caps on the deduplicated working set. Company-general coverage is capped
// well above executive-attributed coverage so an executive search can never
// crowd out primary coverage.
const (
	DefaultGeneralItemCap   = 40
	DefaultExecutiveItemCap = 10
)

// Deduplicator merges adapter outputs into a bounded working set with
// first-seen-wins uniqueness by URL.
type Deduplicator struct {
	GeneralCap   int
	ExecutiveCap int
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		GeneralCap:   DefaultGeneralItemCap,
		ExecutiveCap: DefaultExecutiveItemCap,
	}
}

// Run concatenates the company-general and executive-attributed lists,
// drops items without a URL (they cannot be deduplicated safely), removes
// URL duplicates keeping the first occurrence, and truncates each slice to
// its cap. Relative order among surviving items is preserved. Pure function
// of its inputs.
func (d *Deduplicator) Run(general, executive []RawItem) []RawItem {
	seen := make(map[string]struct{}, len(general)+len(executive))

	result := make([]RawItem, 0, len(general)+len(executive))
	result = appendUnique(result, general, seen, d.GeneralCap)
	result = appendUnique(result, executive, seen, len(result)+d.ExecutiveCap)

	return result
}

func appendUnique(dst, src []RawItem, seen map[string]struct{}, limit int) []RawItem {
	for _, item := range src {
		if len(dst) >= limit {
			break
		}
		if item.URL == "" {
			continue
		}
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		dst = append(dst, item)
	}
	return dst
}
