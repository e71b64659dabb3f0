package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Upstream credentials; a missing key disables that source rather than
	// failing startup.
	GNewsAPIKey      string `long:"gnews-api-key" env:"GNEWS_API_KEY" description:"GNews API key"`
	MediastackAPIKey string `long:"mediastack-api-key" env:"MEDIASTACK_API_KEY" description:"Mediastack API key"`
	NewsdataAPIKey   string `long:"newsdata-api-key" env:"NEWSDATA_API_KEY" description:"Newsdata.io API key"`
	InferenceToken   string `long:"inference-token" env:"INFERENCE_API_TOKEN" description:"Inference API bearer token"`
	InferenceURL     string `long:"inference-url" env:"INFERENCE_API_URL" description:"Inference API base URL (defaults to the public endpoint)"`

	// Cache database
	DBPath string `long:"db-path" env:"DB_PATH" default:"./reputex.db" description:"SQLite fetch cache database path"`

	// Taxonomy
	TopicsFile string `long:"topics-file" env:"TOPICS_FILE" description:"Taxonomy YAML file (defaults to the embedded taxonomy)"`

	// Pipeline tuning
	WorkerCount       int `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of parallel classification workers"`
	SourceTimeout     int `long:"source-timeout" env:"SOURCE_TIMEOUT" default:"15" description:"Per-source fetch timeout in seconds"`
	RequestTimeout    int `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"120" description:"Analysis request timeout in seconds"`
	NewsCacheTTL      int `long:"news-cache-ttl" env:"NEWS_CACHE_TTL" default:"60" description:"News/social fetch cache TTL in minutes"`
	ExecutiveCacheTTL int `long:"executive-cache-ttl" env:"EXECUTIVE_CACHE_TTL" default:"1440" description:"Executive lookup cache TTL in minutes"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"ReputeX/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		APIAccessKey:      raw.APIAccessKey,
		GNewsAPIKey:       raw.GNewsAPIKey,
		MediastackAPIKey:  raw.MediastackAPIKey,
		NewsdataAPIKey:    raw.NewsdataAPIKey,
		InferenceToken:    raw.InferenceToken,
		InferenceURL:      raw.InferenceURL,
		DBPath:            raw.DBPath,
		TopicsFile:        raw.TopicsFile,
		WorkerCount:       raw.WorkerCount,
		SourceTimeout:     raw.SourceTimeout,
		RequestTimeout:    raw.RequestTimeout,
		NewsCacheTTL:      raw.NewsCacheTTL,
		ExecutiveCacheTTL: raw.ExecutiveCacheTTL,
		UserAgent:         raw.UserAgent,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
