package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LogLevelEnv is the environment variable controlling log verbosity. It
// takes precedence over telemetry.logging.level.
const LogLevelEnv = "CATASCII_LOG_LEVEL"

// LoadConfig loads configuration from a YAML file at the specified path.
// An empty path yields the defaults. YAML is decoded on top of
// DefaultConfig, defaults are re-applied to zeroed fields and the result is
// validated. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file (or the
// defaults when path is empty) and applies environment variable overrides.
// Environment variables follow the naming convention CATASCII_SECTION_FIELD
// (e.g., CATASCII_SERVER_LISTEN_ADDRESS) and always take precedence over the
// file. Log verbosity is read from CATASCII_LOG_LEVEL.
//
// The loading sequence is:
// 1. Load YAML from file on top of the defaults
// 2. Apply environment variable overrides
// 3. Validate final configuration
//
// A file value replaced by the environment is never validated on its own.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if errs := applyEnvOverrides(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid environment overrides: %w", ValidationError{Errors: errs})
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile decodes path on top of the defaults without validating.
func loadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Unparsable values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) []FieldError {
	var errs []FieldError

	str := func(name string, dst *string) {
		if val := os.Getenv(name); val != "" {
			*dst = val
		}
	}
	duration := func(name string, dst *time.Duration) {
		if val := os.Getenv(name); val != "" {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid duration %q", val)})
				return
			}
			*dst = d
		}
	}
	integer := func(name string, dst *int64) {
		if val := os.Getenv(name); val != "" {
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid integer %q", val)})
				return
			}
			*dst = i
		}
	}
	boolean := func(name string, dst *bool) {
		if val := os.Getenv(name); val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid boolean %q", val)})
				return
			}
			*dst = b
		}
	}

	// Server overrides
	str("CATASCII_SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	duration("CATASCII_SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	duration("CATASCII_SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	// CatAPI overrides
	str("CATASCII_CATAPI_SEARCH_URL", &cfg.CatAPI.SearchURL)
	str("CATASCII_CATAPI_API_KEY", &cfg.CatAPI.APIKey)
	duration("CATASCII_CATAPI_TIMEOUT", &cfg.CatAPI.Timeout)
	integer("CATASCII_CATAPI_MAX_IMAGE_BYTES", &cfg.CatAPI.MaxImageBytes)

	// Render overrides
	width := int64(cfg.Render.Width)
	integer("CATASCII_RENDER_WIDTH", &width)
	cfg.Render.Width = int(width)
	boolean("CATASCII_RENDER_COLORED", &cfg.Render.Colored)
	boolean("CATASCII_RENDER_DOCUMENT", &cfg.Render.Document)

	// Telemetry overrides
	str(LogLevelEnv, &cfg.Telemetry.Logging.Level)
	str("CATASCII_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	boolean("CATASCII_TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	str("CATASCII_TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	str("CATASCII_TELEMETRY_HEALTH_PROBE_SCHEDULE", &cfg.Telemetry.Health.ProbeSchedule)

	return errs
}
