package sources

import (
	"strings"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

// Keywords combined with the company name when querying news upstreams, so
// coverage skews toward sustainability-relevant reporting.
var esgTerms = []string{
	"ESG", "environmental", "social", "governance", "sustainability",
	"ethics", "carbon", "climate", "labor", "community", "diversity",
	"pollution", "emissions", "renewable",
}

// Headlines matching these are junk for company analysis regardless of query.
var excludeKeywords = []string{"recipe", "horoscope"}

// esgQuery builds the company AND (term OR term ...) query string used by
// the keyed news APIs.
func esgQuery(company string) string {
	return `"` + company + `" AND (` + strings.Join(esgTerms, " OR ") + `)`
}

// outletTrust assigns the trust score for a news outlet name: full weight for
// curated trusted outlets (case-insensitive substring match), the default
// otherwise.
func outletTrust(source string, trusted []string) float64 {
	lower := strings.ToLower(source)
	for _, outlet := range trusted {
		if strings.Contains(lower, strings.ToLower(outlet)) {
			return esg.TrustedOutletScore
		}
	}
	return esg.DefaultTrustScore
}

// relevantHeadline reports whether a headline should be kept: it must
// mention the company (skipped when an explicit query override ran) and must
// not hit the exclusion list.
func relevantHeadline(title, description, company string, overrideRan bool) bool {
	content := strings.ToLower(title + " " + description)

	for _, keyword := range excludeKeywords {
		if strings.Contains(content, keyword) {
			return false
		}
	}

	if overrideRan {
		return true
	}
	return strings.Contains(content, strings.ToLower(company))
}
