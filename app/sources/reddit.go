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

const (
	redditSearchURL = "https://www.reddit.com/search.json"
	redditBaseURL   = "https://www.reddit.com"
)

// Reddit fetches public submissions via Reddit's unauthenticated search API.
// Items are flagged as platform content: the aggregator hard-assigns them the
// Social category and skips topic classification.
type Reddit struct {
	http      *http.Client
	userAgent string
	baseURL   string
}

var _ esg.Source = (*Reddit)(nil)

func NewReddit(httpClient *http.Client, userAgent string) *Reddit {
	return &Reddit{http: httpClient, userAgent: userAgent, baseURL: redditSearchURL}
}

func (r *Reddit) Name() string {
	return "reddit"
}

func (r *Reddit) FetchItems(ctx context.Context, company, queryOverride string) ([]esg.RawItem, error) {
	query := queryOverride
	if query == "" {
		query = `"` + company + `"`
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "relevance")
	params.Set("t", "month")
	params.Set("limit", "15")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	// Reddit rejects requests without a descriptive user agent.
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit returned %s", resp.Status)
	}

	var payload struct {
		Data struct {
			Children []struct {
				Data struct {
					Title     string `json:"title"`
					Permalink string `json:"permalink"`
					Subreddit string `json:"subreddit"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode reddit response: %w", err)
	}

	items := make([]esg.RawItem, 0, len(payload.Data.Children))
	for _, child := range payload.Data.Children {
		post := child.Data
		if post.Title == "" || post.Permalink == "" {
			continue
		}
		items = append(items, esg.RawItem{
			Source:      "r/" + post.Subreddit,
			Text:        post.Title,
			URL:         redditBaseURL + post.Permalink,
			TrustScore:  esg.SocialTrustScore,
			SocialMedia: true,
		})
	}

	slog.Debug("Reddit fetch complete", "company", company, "kept", len(items))
	return items, nil
}
