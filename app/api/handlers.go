package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/heyy-Haarsh/ReputeX/app/assessment"
	"github.com/heyy-Haarsh/ReputeX/app/cfg"
	"github.com/heyy-Haarsh/ReputeX/app/database"
)

func NewHandler(analyzer AnalyzerInterface, cacheRepo database.FetchCacheRepository,
	requestTimeout time.Duration) *Handler {
	return &Handler{
		analyzer:       analyzer,
		cacheRepo:      cacheRepo,
		requestTimeout: requestTimeout,
		startedAt:      time.Now(),
	}
}

// AnalyzeCompany runs the full one-shot reputation analysis for the company
// given in the "company" query parameter.
func (h *Handler) AnalyzeCompany(c *gin.Context) {
	company := c.Query("company")
	if company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company query parameter is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.analyzer.Analyze(ctx, company)
	if err != nil {
		slog.Error("Analysis failed", "company", company, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze company"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// AssessCompany scores a submitted self-assessment questionnaire.
func (h *Handler) AssessCompany(c *gin.Context) {
	var form assessment.SelfAssessment
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, form.Score())
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   cfg.Get().Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := gin.H{
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	}

	if count, err := h.cacheRepo.GetEntryCount(); err != nil {
		slog.Error("Database error", "operation", "cache_entry_count", "error", err)
		stats["cache_entries"] = "unavailable"
	} else {
		stats["cache_entries"] = count
	}

	c.JSON(http.StatusOK, stats)
}
