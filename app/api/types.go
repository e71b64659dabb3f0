package api

import (
	"context"
	"time"

	"github.com/heyy-Haarsh/ReputeX/app/analyzer"
	"github.com/heyy-Haarsh/ReputeX/app/database"
	"github.com/heyy-Haarsh/ReputeX/app/esg"
)

type AnalyzerInterface interface {
	Analyze(ctx context.Context, company string) (esg.ScoreResult, error)
}

var _ AnalyzerInterface = (*analyzer.Analyzer)(nil)

type Handler struct {
	analyzer       AnalyzerInterface
	cacheRepo      database.FetchCacheRepository
	requestTimeout time.Duration
	startedAt      time.Time
}
