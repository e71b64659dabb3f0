package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

// mockAnalyzer returns a fixed result or error.
type mockAnalyzer struct {
	result esg.ScoreResult
	err    error
}

func (m *mockAnalyzer) Analyze(ctx context.Context, company string) (esg.ScoreResult, error) {
	if m.err != nil {
		return esg.ScoreResult{}, m.err
	}
	result := m.result
	result.CompanyName = company
	return result, nil
}

type mockCacheRepo struct {
	count    int
	countErr error
}

func (m *mockCacheRepo) Get(source, key string, ttl time.Duration) ([]byte, bool, error) {
	return nil, false, nil
}

func (m *mockCacheRepo) Set(source, key string, payload []byte) error {
	return nil
}

func (m *mockCacheRepo) Purge(olderThan time.Duration) (int64, error) {
	return 0, nil
}

func (m *mockCacheRepo) GetEntryCount() (int, error) {
	return m.count, m.countErr
}

func scoreResultFixture() esg.ScoreResult {
	return esg.ScoreResult{
		OverallScore: 72,
		Scores:       esg.PillarScores{Environmental: 60, Social: 75, Governance: 80},
		Modules: []esg.Module{
			{ModuleName: "Official News (ESG)", Sentiment: "Positive", Feed: []esg.AnalyzedItem{}},
			{ModuleName: "Social (Reddit)", Sentiment: "Neutral", Feed: []esg.AnalyzedItem{}},
		},
		Suggestions: []string{"No major reputation risks detected in current public coverage. Maintain existing disclosure practices."},
		RiskHeatmap: map[string]float64{"Climate & Emissions": 0},
	}
}

func performRequest(handler *Handler, apiAccessKey, method, target, body string) *httptest.ResponseRecorder {
	router := NewServer(handler, apiAccessKey)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeCompany(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{result: scoreResultFixture()}, &mockCacheRepo{}, time.Minute)

	w := performRequest(handler, "", http.MethodGet, "/api/analyze?company=Acme", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var result esg.ScoreResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.CompanyName != "Acme" {
		t.Errorf("Expected company name Acme, got %q", result.CompanyName)
	}
	if result.OverallScore != 72 {
		t.Errorf("Expected overall score 72, got %d", result.OverallScore)
	}
	if len(result.Modules) != 2 {
		t.Errorf("Expected 2 modules, got %d", len(result.Modules))
	}
}

func TestAnalyzeCompany_MissingCompanyParam(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{result: scoreResultFixture()}, &mockCacheRepo{}, time.Minute)

	w := performRequest(handler, "", http.MethodGet, "/api/analyze", "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestAnalyzeCompany_AnalyzerError(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{err: fmt.Errorf("pipeline failure")}, &mockCacheRepo{}, time.Minute)

	w := performRequest(handler, "", http.MethodGet, "/api/analyze?company=Acme", "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "pipeline failure") {
		t.Errorf("Expected internal error details hidden from clients, got %s", w.Body.String())
	}
}

func TestAnalyzeCompany_APIKeyRequired(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{result: scoreResultFixture()}, &mockCacheRepo{}, time.Minute)
	router := NewServer(handler, "secret")

	// Without a key
	req := httptest.NewRequest(http.MethodGet, "/api/analyze?company=Acme", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without key, got %d", w.Code)
	}

	// With the header key
	req = httptest.NewRequest(http.MethodGet, "/api/analyze?company=Acme", nil)
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with header key, got %d", w.Code)
	}

	// With the query key
	req = httptest.NewRequest(http.MethodGet, "/api/analyze?company=Acme&api_key=secret", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with query key, got %d", w.Code)
	}
}

func TestAssessCompany(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{}, &mockCacheRepo{}, time.Minute)

	body := `{
		"company_name": "Acme",
		"ghg_disclosed": true,
		"renewable_percent": 100,
		"water_target": true,
		"waste_reduction_program": true,
		"biodiversity_policy": true,
		"grievance_mechanism": true,
		"gender_pay_gap": 0,
		"supplier_audits": true,
		"employee_training_hours": 40,
		"data_privacy_policy": true,
		"board_esg_committee": true,
		"board_female_percent": 50,
		"anticorruption_training": true,
		"exec_comp_esg_linked": true,
		"independent_board_chair": true
	}`

	w := performRequest(handler, "", http.MethodPost, "/api/assess", body)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		CompanyName string  `json:"company_name"`
		BaseScore   float64 `json:"base_sa_score"`
		Status      string  `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.BaseScore != 100 {
		t.Errorf("Expected base score 100, got %v", result.BaseScore)
	}
	if result.Status != "Self-Assessment Complete" {
		t.Errorf("Unexpected status: %q", result.Status)
	}
}

func TestAssessCompany_InvalidBody(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{}, &mockCacheRepo{}, time.Minute)

	w := performRequest(handler, "", http.MethodPost, "/api/assess", `{"company_name":`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for malformed JSON, got %d", w.Code)
	}
}

func TestAssessCompany_ValidationError(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{}, &mockCacheRepo{}, time.Minute)

	w := performRequest(handler, "", http.MethodPost, "/api/assess", `{"company_name": "Acme", "renewable_percent": 150}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for out-of-range field, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "renewable_percent") {
		t.Errorf("Expected validation message, got %s", w.Body.String())
	}
}

func TestGetStats(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{}, &mockCacheRepo{count: 7}, time.Minute)

	w := performRequest(handler, "", http.MethodGet, "/stats", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var stats struct {
		Uptime       string `json:"uptime"`
		CacheEntries int    `json:"cache_entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if stats.CacheEntries != 7 {
		t.Errorf("Expected 7 cache entries, got %d", stats.CacheEntries)
	}
	if stats.Uptime == "" {
		t.Errorf("Expected uptime reported")
	}
}

func TestGetStats_CacheCountFailure(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{}, &mockCacheRepo{countErr: fmt.Errorf("db closed")}, time.Minute)

	w := performRequest(handler, "", http.MethodGet, "/stats", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 despite count failure, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unavailable") {
		t.Errorf("Expected unavailable marker, got %s", w.Body.String())
	}
}

func TestCORSPreflightRequest(t *testing.T) {
	handler := NewHandler(&mockAnalyzer{}, &mockCacheRepo{}, time.Minute)
	router := NewServer(handler, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard CORS origin, got %q", got)
	}
}
