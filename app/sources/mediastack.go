package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

// Free-tier Mediastack keys are HTTP only.
const mediastackNewsURL = "http://api.mediastack.com/v1/news"

// Mediastack fetches recent news headlines from the Mediastack API.
type Mediastack struct {
	apiKey  string
	trusted []string
	http    *http.Client
	baseURL string
}

var _ esg.Source = (*Mediastack)(nil)

func NewMediastack(apiKey string, trusted []string, httpClient *http.Client) *Mediastack {
	return &Mediastack{apiKey: apiKey, trusted: trusted, http: httpClient, baseURL: mediastackNewsURL}
}

func (m *Mediastack) Name() string {
	return "mediastack"
}

func (m *Mediastack) FetchItems(ctx context.Context, company, queryOverride string) ([]esg.RawItem, error) {
	if m.apiKey == "" {
		slog.Debug("Mediastack API key not configured, skipping source")
		return nil, nil
	}

	keywords := queryOverride
	if keywords == "" {
		keywords = company + " (" + strings.Join(esgTerms[:6], " OR ") + ")"
	}

	params := url.Values{}
	params.Set("access_key", m.apiKey)
	params.Set("keywords", keywords)
	params.Set("languages", "en")
	params.Set("limit", "25")
	params.Set("sort", "published_desc")

	var resp struct {
		Data []struct {
			Title  string `json:"title"`
			URL    string `json:"url"`
			Source string `json:"source"`
		} `json:"data"`
	}
	if err := getJSON(ctx, m.http, m.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("mediastack request failed: %w", err)
	}

	items := make([]esg.RawItem, 0, len(resp.Data))
	for _, article := range resp.Data {
		if article.Title == "" || article.URL == "" {
			continue
		}
		if !relevantHeadline(article.Title, "", company, queryOverride != "") {
			continue
		}
		source := article.Source
		if source == "" {
			source = "Mediastack"
		}
		items = append(items, esg.RawItem{
			Source:     source,
			Text:       article.Title,
			URL:        article.URL,
			TrustScore: outletTrust(source, m.trusted),
		})
	}

	slog.Debug("Mediastack fetch complete", "company", company, "returned", len(resp.Data), "kept", len(items))
	return items, nil
}
