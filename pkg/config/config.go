package config

import "time"

// Config is the root configuration structure for catascii.
type Config struct {
	// Server contains the public HTTP listener configuration.
	Server ServerConfig `yaml:"server"`

	// CatAPI configures the upstream random-image API and the image download.
	CatAPI CatAPIConfig `yaml:"catapi"`

	// Render configures the ASCII-art converter.
	Render RenderConfig `yaml:"render"`

	// Telemetry contains logging, metrics and upstream health probing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on ("host:port").
	// Default: "0.0.0.0:5000"
	ListenAddress string `yaml:"listen_address"`

	// ReadHeaderTimeout bounds the time allowed to read request headers.
	// Default: 10s
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It must exceed twice catapi.timeout so both upstream calls
	// and the conversion fit.
	// Default: 90s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds the graceful drain. Zero waits for in-flight
	// requests indefinitely.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// CatAPIConfig configures the image source client and the image fetcher.
type CatAPIConfig struct {
	// SearchURL is the endpoint returning a JSON array of image descriptors.
	// Default: "https://api.thecatapi.com/v1/images/search"
	SearchURL string `yaml:"search_url"`

	// APIKey is sent as the x-api-key header when set. Optional.
	APIKey string `yaml:"api_key"`

	// Timeout bounds each outbound call, body included.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// MaxImageBytes caps the downloaded image size.
	// Default: 20MB
	MaxImageBytes int64 `yaml:"max_image_bytes"`

	// UserAgent is sent on every outbound request.
	UserAgent string `yaml:"user_agent"`
}

// RenderConfig configures the ASCII-art converter.
type RenderConfig struct {
	// Width is the number of character columns. Images narrower than this
	// are not upscaled.
	// Default: 100
	Width int `yaml:"width"`

	// Characters is the brightness ramp, from darkest to brightest.
	// Default: " .:-=+*#%@"
	Characters string `yaml:"characters"`

	// Colored wraps characters in color-styled spans.
	// Default: true
	Colored bool `yaml:"colored"`

	// Document emits a complete HTML document instead of a bare fragment.
	// Default: true
	Document bool `yaml:"document"`

	// MaxPixels rejects images whose declared dimensions exceed this many
	// pixels before the full decode.
	// Default: 40000000
	MaxPixels int64 `yaml:"max_pixels"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Health  HealthConfig  `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is a slog level expression ("debug", "info", "warn", "error",
	// optionally with an offset such as "info+2").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus admin listener. Metrics are served
// on their own listener so the public surface stays a single route.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the admin listener address.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the scrape path.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "catascii"
	Namespace string `yaml:"namespace"`

	// RequestDurationBuckets are the histogram buckets, in seconds, for
	// request and upstream latencies.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// HealthConfig configures the scheduled upstream probe.
type HealthConfig struct {
	// ProbeSchedule is a cron expression ("@every 1m", "*/5 * * * *").
	// Empty disables probing.
	ProbeSchedule string `yaml:"probe_schedule"`
}
