package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

const newsdataNewsURL = "https://newsdata.io/api/1/news"

// Newsdata fetches news headlines from the Newsdata.io API.
type Newsdata struct {
	apiKey  string
	trusted []string
	http    *http.Client
	baseURL string
}

var _ esg.Source = (*Newsdata)(nil)

func NewNewsdata(apiKey string, trusted []string, httpClient *http.Client) *Newsdata {
	return &Newsdata{apiKey: apiKey, trusted: trusted, http: httpClient, baseURL: newsdataNewsURL}
}

func (n *Newsdata) Name() string {
	return "newsdata"
}

func (n *Newsdata) FetchItems(ctx context.Context, company, queryOverride string) ([]esg.RawItem, error) {
	if n.apiKey == "" {
		slog.Debug("Newsdata API key not configured, skipping source")
		return nil, nil
	}

	query := queryOverride
	if query == "" {
		query = esgQuery(company)
	}

	params := url.Values{}
	params.Set("apikey", n.apiKey)
	params.Set("q", query)
	params.Set("language", "en")

	var resp struct {
		Results []struct {
			Title    string `json:"title"`
			Link     string `json:"link"`
			SourceID string `json:"source_id"`
		} `json:"results"`
	}
	if err := getJSON(ctx, n.http, n.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("newsdata request failed: %w", err)
	}

	items := make([]esg.RawItem, 0, len(resp.Results))
	for _, article := range resp.Results {
		if article.Title == "" || article.Link == "" {
			continue
		}
		if !relevantHeadline(article.Title, "", company, queryOverride != "") {
			continue
		}
		source := article.SourceID
		if source == "" {
			source = "Newsdata.io"
		}
		items = append(items, esg.RawItem{
			Source:     source,
			Text:       article.Title,
			URL:        article.Link,
			TrustScore: outletTrust(source, n.trusted),
		})
	}

	slog.Debug("Newsdata fetch complete", "company", company, "returned", len(resp.Results), "kept", len(items))
	return items, nil
}
