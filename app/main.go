package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heyy-Haarsh/ReputeX/app/analyzer"
	"github.com/heyy-Haarsh/ReputeX/app/api"
	"github.com/heyy-Haarsh/ReputeX/app/cfg"
	"github.com/heyy-Haarsh/ReputeX/app/classifier"
	"github.com/heyy-Haarsh/ReputeX/app/database"
	"github.com/heyy-Haarsh/ReputeX/app/esg"
	"github.com/heyy-Haarsh/ReputeX/app/sources"
	"github.com/heyy-Haarsh/ReputeX/app/topics"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting ReputeX server", "version", appCfg.Version)

	// Taxonomy and policy tables. A malformed table is fatal: running with
	// wrong labels silently produces wrong scores.
	taxonomy, err := topics.Load(appCfg.TopicsFile)
	if err != nil {
		slog.Error("Failed to load taxonomy", "error", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open cache database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Cache database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	cacheRepo := database.NewFetchCacheRepository(db)
	if removed, err := cacheRepo.Purge(7 * 24 * time.Hour); err != nil {
		slog.Warn("Fetch cache purge failed", "error", err)
	} else if removed > 0 {
		slog.Info("Purged stale fetch cache entries", "removed", removed)
	}

	httpClient := &http.Client{Timeout: time.Duration(appCfg.SourceTimeout) * time.Second}
	newsTTL := time.Duration(appCfg.NewsCacheTTL) * time.Minute
	executiveTTL := time.Duration(appCfg.ExecutiveCacheTTL) * time.Minute
	trusted := taxonomy.Policy.TrustedOutlets

	extractor := sources.NewContentExtractor()
	newsSources := []esg.Source{
		sources.NewCachedSource(sources.NewGNews(appCfg.GNewsAPIKey, trusted, httpClient), cacheRepo, newsTTL),
		sources.NewCachedSource(sources.NewMediastack(appCfg.MediastackAPIKey, trusted, httpClient), cacheRepo, newsTTL),
		sources.NewCachedSource(sources.NewNewsdata(appCfg.NewsdataAPIKey, trusted, httpClient), cacheRepo, newsTTL),
		sources.NewCachedSource(sources.NewGoogleNews(trusted, httpClient, appCfg.UserAgent, extractor), cacheRepo, newsTTL),
	}
	socialSources := []esg.Source{
		sources.NewCachedSource(sources.NewReddit(httpClient, appCfg.UserAgent), cacheRepo, newsTTL),
	}

	wikidata := sources.NewWikidata(httpClient)
	executiveFinder := sources.NewCachedExecutiveFinder(wikidata, wikidata.Name(), cacheRepo, executiveTTL)

	inferenceClient := classifier.NewClient(appCfg.InferenceURL, appCfg.InferenceToken)

	companyAnalyzer := analyzer.New(taxonomy, inferenceClient, inferenceClient,
		newsSources, socialSources, executiveFinder,
		time.Duration(appCfg.SourceTimeout)*time.Second, appCfg.WorkerCount)

	apiHandler := api.NewHandler(companyAnalyzer, cacheRepo, time.Duration(appCfg.RequestTimeout)*time.Second)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Duration(appCfg.RequestTimeout+10) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		slog.Info("API endpoints available",
			"analyze", "/api/analyze?company=<name>",
			"assess", "/api/assess",
			"health", "/health",
			"stats", "/stats")
		serverErrChan <- httpServer.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			slog.Error("Failed to shutdown HTTP server", "error", err)
		}
	}

	slog.Info("ReputeX server stopped")
}
