package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

const gnewsSearchURL = "https://gnews.io/api/v4/search"

// GNews fetches ESG news headlines from the GNews search API.
type GNews struct {
	apiKey  string
	trusted []string
	http    *http.Client
	baseURL string
}

var _ esg.Source = (*GNews)(nil)

func NewGNews(apiKey string, trusted []string, httpClient *http.Client) *GNews {
	return &GNews{apiKey: apiKey, trusted: trusted, http: httpClient, baseURL: gnewsSearchURL}
}

func (g *GNews) Name() string {
	return "gnews"
}

func (g *GNews) FetchItems(ctx context.Context, company, queryOverride string) ([]esg.RawItem, error) {
	if g.apiKey == "" {
		slog.Debug("GNews API key not configured, skipping source")
		return nil, nil
	}

	query := queryOverride
	if query == "" {
		query = esgQuery(company)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", "en")
	params.Set("max", "30")
	params.Set("in", "title,description")
	params.Set("sortby", "relevance")
	params.Set("apikey", g.apiKey)

	var resp struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := getJSON(ctx, g.http, g.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("gnews request failed: %w", err)
	}

	items := make([]esg.RawItem, 0, len(resp.Articles))
	for _, article := range resp.Articles {
		if article.Title == "" || article.URL == "" {
			continue
		}
		if !relevantHeadline(article.Title, article.Description, company, queryOverride != "") {
			continue
		}
		items = append(items, esg.RawItem{
			Source:     article.Source.Name,
			Text:       article.Title,
			URL:        article.URL,
			TrustScore: outletTrust(article.Source.Name, g.trusted),
		})
	}

	slog.Debug("GNews fetch complete", "company", company, "returned", len(resp.Articles), "kept", len(items))
	return items, nil
}

// getJSON performs a GET request and decodes the JSON response body into v.
func getJSON(ctx context.Context, client *http.Client, requestURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
