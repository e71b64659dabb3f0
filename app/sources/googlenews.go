package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

const (
	googleNewsRSSURL = "https://news.google.com/rss/search"

	// Headlines shorter than this are enriched with extracted article text
	// when an extractor is available; enrichment is bounded per fetch.
	shortHeadlineLength = 50
	maxEnrichedItems    = 3
	maxEnrichedBytes    = 1 << 20
	enrichedTextLength  = 300
)

// GoogleNews fetches headlines from the keyless Google News RSS search feed.
type GoogleNews struct {
	trusted   []string
	http      *http.Client
	parser    *gofeed.Parser
	extractor *ContentExtractor
}

var _ esg.Source = (*GoogleNews)(nil)

// NewGoogleNews creates the adapter. extractor may be nil to disable
// article-text enrichment.
func NewGoogleNews(trusted []string, httpClient *http.Client, userAgent string, extractor *ContentExtractor) *GoogleNews {
	parser := gofeed.NewParser()
	parser.Client = httpClient
	parser.UserAgent = userAgent

	return &GoogleNews{
		trusted:   trusted,
		http:      httpClient,
		parser:    parser,
		extractor: extractor,
	}
}

func (g *GoogleNews) Name() string {
	return "googlenews"
}

func (g *GoogleNews) FetchItems(ctx context.Context, company, queryOverride string) ([]esg.RawItem, error) {
	query := queryOverride
	if query == "" {
		query = fmt.Sprintf("%q %s", company, "ESG OR sustainability OR governance")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")

	feed, err := g.parser.ParseURLWithContext(googleNewsRSSURL+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("google news feed parse failed: %w", err)
	}

	items := make([]esg.RawItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Title == "" || entry.Link == "" {
			continue
		}

		headline, outlet := splitGoogleNewsTitle(entry.Title)
		if !relevantHeadline(headline, entry.Description, company, queryOverride != "") {
			continue
		}

		items = append(items, esg.RawItem{
			Source:     outlet,
			Text:       headline,
			URL:        entry.Link,
			TrustScore: outletTrust(outlet, g.trusted),
		})
	}

	g.enrichShortItems(ctx, items)

	slog.Debug("Google News fetch complete", "company", company, "returned", len(feed.Items), "kept", len(items))
	return items, nil
}

// splitGoogleNewsTitle separates the "Headline - Outlet" form used by the
// Google News feed into its parts.
func splitGoogleNewsTitle(title string) (headline, outlet string) {
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
	}
	return title, "Google News"
}

// enrichShortItems replaces too-short headlines with a leading excerpt of
// the article body. Failures leave the headline as-is.
func (g *GoogleNews) enrichShortItems(ctx context.Context, items []esg.RawItem) {
	if g.extractor == nil {
		return
	}

	enriched := 0
	for i := range items {
		if enriched >= maxEnrichedItems {
			break
		}
		if len(items[i].Text) >= shortHeadlineLength {
			continue
		}

		text, err := g.fetchArticleText(ctx, items[i].URL)
		if err != nil {
			slog.Debug("Article enrichment failed", "url", items[i].URL, "error", err)
			continue
		}

		items[i].Text = items[i].Text + ". " + text
		enriched++
	}
}

func (g *GoogleNews) fetchArticleText(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxEnrichedBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text, err := g.extractor.Run(data)
	if err != nil {
		return "", err
	}

	if len(text) > enrichedTextLength {
		text = text[:enrichedTextLength]
	}
	return text, nil
}
