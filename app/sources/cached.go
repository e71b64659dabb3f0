package sources

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/heyy-Haarsh/ReputeX/app/database"
	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

// cachedItem is the cache-file shape of a RawItem. The provenance flags are
// not part of the wire contract but must survive a cache round trip.
type cachedItem struct {
	Source      string  `json:"source"`
	Text        string  `json:"text"`
	URL         string  `json:"url"`
	TrustScore  float64 `json:"trust_score"`
	SocialMedia bool    `json:"social_media"`
	Executive   bool    `json:"executive"`
}

// CachedSource wraps a source adapter with the advisory TTL fetch cache.
// Every cache failure degrades to a plain upstream fetch; the cache affects
// latency only, never correctness.
type CachedSource struct {
	inner esg.Source
	repo  database.FetchCacheRepository
	ttl   time.Duration
}

var _ esg.Source = (*CachedSource)(nil)

func NewCachedSource(inner esg.Source, repo database.FetchCacheRepository, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, repo: repo, ttl: ttl}
}

func (c *CachedSource) Name() string {
	return c.inner.Name()
}

func (c *CachedSource) FetchItems(ctx context.Context, company, queryOverride string) ([]esg.RawItem, error) {
	key := cacheKey(company, queryOverride)

	if payload, hit, err := c.repo.Get(c.Name(), key, c.ttl); err != nil {
		slog.Warn("Fetch cache read failed", "source", c.Name(), "error", err)
	} else if hit {
		var cached []cachedItem
		if err := json.Unmarshal(payload, &cached); err != nil {
			slog.Warn("Fetch cache entry malformed, refetching", "source", c.Name(), "error", err)
		} else {
			slog.Debug("Fetch cache hit", "source", c.Name(), "key", key, "items", len(cached))
			return fromCached(cached), nil
		}
	}

	items, err := c.inner.FetchItems(ctx, company, queryOverride)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(toCached(items)); err != nil {
		slog.Warn("Fetch cache encode failed", "source", c.Name(), "error", err)
	} else if err := c.repo.Set(c.Name(), key, payload); err != nil {
		slog.Warn("Fetch cache write failed", "source", c.Name(), "error", err)
	}

	return items, nil
}

// CachedExecutiveFinder wraps the knowledge-graph lookup with the same
// advisory cache, on a longer TTL since executive identity changes slowly.
type CachedExecutiveFinder struct {
	inner esg.ExecutiveFinder
	name  string
	repo  database.FetchCacheRepository
	ttl   time.Duration
}

var _ esg.ExecutiveFinder = (*CachedExecutiveFinder)(nil)

func NewCachedExecutiveFinder(inner esg.ExecutiveFinder, name string, repo database.FetchCacheRepository, ttl time.Duration) *CachedExecutiveFinder {
	return &CachedExecutiveFinder{inner: inner, name: name, repo: repo, ttl: ttl}
}

func (c *CachedExecutiveFinder) FindExecutives(ctx context.Context, company string) ([]esg.Executive, error) {
	key := cacheKey(company, "")

	if payload, hit, err := c.repo.Get(c.name, key, c.ttl); err != nil {
		slog.Warn("Fetch cache read failed", "source", c.name, "error", err)
	} else if hit {
		var cached []esg.Executive
		if err := json.Unmarshal(payload, &cached); err != nil {
			slog.Warn("Fetch cache entry malformed, refetching", "source", c.name, "error", err)
		} else {
			return cached, nil
		}
	}

	executives, err := c.inner.FindExecutives(ctx, company)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(executives); err != nil {
		slog.Warn("Fetch cache encode failed", "source", c.name, "error", err)
	} else if err := c.repo.Set(c.name, key, payload); err != nil {
		slog.Warn("Fetch cache write failed", "source", c.name, "error", err)
	}

	return executives, nil
}

func cacheKey(company, queryOverride string) string {
	if queryOverride == "" {
		return company
	}
	return company + "|" + queryOverride
}

func toCached(items []esg.RawItem) []cachedItem {
	cached := make([]cachedItem, len(items))
	for i, item := range items {
		cached[i] = cachedItem{
			Source:      item.Source,
			Text:        item.Text,
			URL:         item.URL,
			TrustScore:  item.TrustScore,
			SocialMedia: item.SocialMedia,
			Executive:   item.Executive,
		}
	}
	return cached
}

func fromCached(cached []cachedItem) []esg.RawItem {
	items := make([]esg.RawItem, len(cached))
	for i, c := range cached {
		items[i] = esg.RawItem{
			Source:      c.Source,
			Text:        c.Text,
			URL:         c.URL,
			TrustScore:  c.TrustScore,
			SocialMedia: c.SocialMedia,
			Executive:   c.Executive,
		}
	}
	return items
}
