package cfg

type Cfg struct {
	// HTTP server
	Port         string
	APIAccessKey string

	// Upstream credentials
	GNewsAPIKey      string
	MediastackAPIKey string
	NewsdataAPIKey   string
	InferenceToken   string
	InferenceURL     string

	// Cache database
	DBPath string

	// Taxonomy
	TopicsFile string

	// Pipeline tuning
	WorkerCount       int
	SourceTimeout     int // seconds
	RequestTimeout    int // seconds
	NewsCacheTTL      int // minutes
	ExecutiveCacheTTL int // minutes

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
