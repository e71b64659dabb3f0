package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

const (
	wikidataAPIURL    = "https://www.wikidata.org/w/api.php"
	wikidataSPARQLURL = "https://query.wikidata.org/sparql"

	maxExecutives = 3
)

// Wikidata resolves a company name to its chief officers through the public
// knowledge graph: an entity search followed by a SPARQL lookup of the
// chief-executive-officer property.
type Wikidata struct {
	http      *http.Client
	apiURL    string
	sparqlURL string
}

var _ esg.ExecutiveFinder = (*Wikidata)(nil)

func NewWikidata(httpClient *http.Client) *Wikidata {
	return &Wikidata{http: httpClient, apiURL: wikidataAPIURL, sparqlURL: wikidataSPARQLURL}
}

func (w *Wikidata) Name() string {
	return "wikidata"
}

func (w *Wikidata) FindExecutives(ctx context.Context, company string) ([]esg.Executive, error) {
	entityID, err := w.searchEntity(ctx, company)
	if err != nil {
		return nil, err
	}
	if entityID == "" {
		slog.Debug("No Wikidata entity found for company", "company", company)
		return nil, nil
	}

	names, err := w.queryOfficers(ctx, entityID)
	if err != nil {
		return nil, err
	}

	executives := make([]esg.Executive, 0, len(names))
	for _, name := range names {
		if len(executives) >= maxExecutives {
			break
		}
		executives = append(executives, esg.Executive{Name: name, Role: "chief executive officer"})
	}

	slog.Debug("Wikidata lookup complete", "company", company, "entity", entityID, "executives", len(executives))
	return executives, nil
}

func (w *Wikidata) searchEntity(ctx context.Context, company string) (string, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", company)
	params.Set("language", "en")
	params.Set("type", "item")
	params.Set("limit", "1")
	params.Set("format", "json")

	var resp struct {
		Search []struct {
			ID string `json:"id"`
		} `json:"search"`
	}
	if err := getJSON(ctx, w.http, w.apiURL+"?"+params.Encode(), &resp); err != nil {
		return "", fmt.Errorf("wikidata entity search failed: %w", err)
	}

	if len(resp.Search) == 0 {
		return "", nil
	}
	return resp.Search[0].ID, nil
}

func (w *Wikidata) queryOfficers(ctx context.Context, entityID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT ?officerLabel WHERE {
		wd:%s wdt:P169 ?officer.
		SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
	}`, entityID)

	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")

	var resp struct {
		Results struct {
			Bindings []struct {
				OfficerLabel struct {
					Value string `json:"value"`
				} `json:"officerLabel"`
			} `json:"bindings"`
		} `json:"results"`
	}
	if err := getJSON(ctx, w.http, w.sparqlURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("wikidata SPARQL query failed: %w", err)
	}

	names := make([]string, 0, len(resp.Results.Bindings))
	for _, binding := range resp.Results.Bindings {
		if binding.OfficerLabel.Value != "" {
			names = append(names, binding.OfficerLabel.Value)
		}
	}
	return names, nil
}
