package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWikidata_FindExecutives(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("action") != "wbsearchentities" {
			t.Errorf("Expected wbsearchentities action, got %q", query.Get("action"))
		}
		if query.Get("search") != "Acme" {
			t.Errorf("Expected company search, got %q", query.Get("search"))
		}
		w.Write([]byte(`{"search": [{"id": "Q42"}]}`))
	}))
	defer apiServer.Close()

	sparqlServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if !strings.Contains(query, "wd:Q42 wdt:P169") {
			t.Errorf("Expected chief-executive-officer query for Q42, got %q", query)
		}
		w.Write([]byte(`{
			"results": {
				"bindings": [
					{"officerLabel": {"value": "Jane Doe"}},
					{"officerLabel": {"value": "John Smith"}},
					{"officerLabel": {"value": ""}},
					{"officerLabel": {"value": "Ada Example"}},
					{"officerLabel": {"value": "One Too Many"}}
				]
			}
		}`))
	}))
	defer sparqlServer.Close()

	finder := NewWikidata(apiServer.Client())
	finder.apiURL = apiServer.URL
	finder.sparqlURL = sparqlServer.URL

	executives, err := finder.FindExecutives(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(executives) != maxExecutives {
		t.Fatalf("Expected %d executives, got %d", maxExecutives, len(executives))
	}
	if executives[0].Name != "Jane Doe" {
		t.Errorf("Expected first officer Jane Doe, got %q", executives[0].Name)
	}
	if executives[0].Role != "chief executive officer" {
		t.Errorf("Expected CEO role, got %q", executives[0].Role)
	}
}

func TestWikidata_FindExecutives_NoEntity(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"search": []}`))
	}))
	defer apiServer.Close()

	finder := NewWikidata(apiServer.Client())
	finder.apiURL = apiServer.URL

	executives, err := finder.FindExecutives(context.Background(), "Completely Unknown Corp")
	if err != nil {
		t.Fatalf("Expected no error for unknown company, got %v", err)
	}
	if executives != nil {
		t.Errorf("Expected nil executives for unknown company, got %v", executives)
	}
}

func TestWikidata_FindExecutives_SearchError(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer apiServer.Close()

	finder := NewWikidata(apiServer.Client())
	finder.apiURL = apiServer.URL

	if _, err := finder.FindExecutives(context.Background(), "Acme"); err == nil {
		t.Errorf("Expected error for failed entity search")
	}
}
