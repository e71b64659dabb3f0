package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

func TestGNews_FetchItems_NoAPIKey(t *testing.T) {
	source := NewGNews("", nil, http.DefaultClient)

	items, err := source.FetchItems(context.Background(), "Acme", "")
	if err != nil {
		t.Errorf("Expected no error for unconfigured key, got %v", err)
	}
	if items != nil {
		t.Errorf("Expected nil items for unconfigured key, got %v", items)
	}
}

func TestGNews_FetchItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("apikey") != "test-key" {
			t.Errorf("Expected apikey param, got %q", query.Get("apikey"))
		}
		if query.Get("lang") != "en" {
			t.Errorf("Expected lang=en, got %q", query.Get("lang"))
		}
		if query.Get("q") == "" {
			t.Errorf("Expected non-empty query")
		}

		w.Write([]byte(`{
			"articles": [
				{"title": "Acme fined over emissions", "description": "", "url": "https://example.com/1", "source": {"name": "Reuters"}},
				{"title": "Acme opens new plant", "description": "", "url": "https://example.com/2", "source": {"name": "Local Blog"}},
				{"title": "Unrelated market wrap", "description": "", "url": "https://example.com/3", "source": {"name": "Reuters"}},
				{"title": "", "description": "", "url": "https://example.com/4", "source": {"name": "Reuters"}}
			]
		}`))
	}))
	defer server.Close()

	source := NewGNews("test-key", []string{"reuters"}, server.Client())
	source.baseURL = server.URL

	items, err := source.FetchItems(context.Background(), "Acme", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Irrelevant and title-less articles are dropped
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	if items[0].Source != "Reuters" || items[0].TrustScore != esg.TrustedOutletScore {
		t.Errorf("Expected trusted outlet with full trust, got %+v", items[0])
	}
	if items[1].Source != "Local Blog" || items[1].TrustScore != esg.DefaultTrustScore {
		t.Errorf("Expected untrusted outlet with default trust, got %+v", items[1])
	}
	if items[0].SocialMedia || items[0].Executive {
		t.Errorf("Expected provenance flags unset for news items")
	}
}

func TestGNews_FetchItems_QueryOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != `"Jane Doe" "Acme"` {
			t.Errorf("Expected override query, got %q", got)
		}
		w.Write([]byte(`{
			"articles": [
				{"title": "Jane Doe steps down", "description": "", "url": "https://example.com/1", "source": {"name": "Reuters"}}
			]
		}`))
	}))
	defer server.Close()

	source := NewGNews("test-key", nil, server.Client())
	source.baseURL = server.URL

	items, err := source.FetchItems(context.Background(), "Acme", `"Jane Doe" "Acme"`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The company-mention filter is skipped when an override ran
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
}

func TestGNews_FetchItems_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	source := NewGNews("test-key", nil, server.Client())
	source.baseURL = server.URL

	_, err := source.FetchItems(context.Background(), "Acme", "")
	if err == nil {
		t.Errorf("Expected error for non-200 upstream response")
	}
}
