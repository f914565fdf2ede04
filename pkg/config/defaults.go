package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress     = "0.0.0.0:5000"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 90 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultMaxHeaderBytes    = 1048576 // 1MB

	// CatAPI defaults
	DefaultSearchURL     = "https://api.thecatapi.com/v1/images/search"
	DefaultCatAPITimeout = 30 * time.Second
	DefaultMaxImageBytes = int64(20 << 20)
	DefaultUserAgent     = "catascii"

	// Render defaults
	DefaultRenderWidth      = 100
	DefaultRenderCharacters = " .:-=+*#%@"
	DefaultMaxPixels        = int64(40_000_000)

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "catascii"
)

// HealthPath is where the admin listener serves the upstream probe status.
const HealthPath = "/healthz"

// ApplyDefaults fills every zero-valued field with its default.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// CatAPI defaults
	if cfg.CatAPI.SearchURL == "" {
		cfg.CatAPI.SearchURL = DefaultSearchURL
	}
	if cfg.CatAPI.Timeout == 0 {
		cfg.CatAPI.Timeout = DefaultCatAPITimeout
	}
	if cfg.CatAPI.MaxImageBytes == 0 {
		cfg.CatAPI.MaxImageBytes = DefaultMaxImageBytes
	}
	if cfg.CatAPI.UserAgent == "" {
		cfg.CatAPI.UserAgent = DefaultUserAgent
	}

	// Render defaults
	if cfg.Render.Width == 0 {
		cfg.Render.Width = DefaultRenderWidth
	}
	if cfg.Render.Characters == "" {
		cfg.Render.Characters = DefaultRenderCharacters
	}
	if cfg.Render.MaxPixels == 0 {
		cfg.Render.MaxPixels = DefaultMaxPixels
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// DefaultConfig returns a configuration with every default applied.
//
// Fields whose zero value is meaningful (the shutdown timeout, where zero
// waits indefinitely, and the render flags) are only set here. LoadConfig
// decodes YAML on top of this value so that they keep their defaults unless
// the file sets them explicitly.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	cfg.Render.Colored = true
	cfg.Render.Document = true
	ApplyDefaults(cfg)
	return cfg
}
