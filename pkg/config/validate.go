package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"

	"catascii-hq/catascii/pkg/ascii"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any rule fails. All errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateCatAPI(&cfg.CatAPI)...)
	errs = append(errs, validateRender(&cfg.Render)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if cfg.Telemetry.Metrics.Enabled && cfg.Telemetry.Metrics.ListenAddress == cfg.Server.ListenAddress {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.listen_address",
			Message: "metrics must listen on a different address than the server",
		})
	}

	// The write deadline must outlast both sequential upstream calls.
	if cfg.Server.WriteTimeout > 0 && cfg.CatAPI.Timeout > 0 && cfg.Server.WriteTimeout <= 2*cfg.CatAPI.Timeout {
		errs = append(errs, FieldError{
			Field: "server.write_timeout",
			Message: fmt.Sprintf("write timeout %s must exceed twice catapi.timeout (%s)",
				cfg.Server.WriteTimeout, 2*cfg.CatAPI.Timeout),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid listen address %q: %v", cfg.ListenAddress, err),
		})
	}

	if cfg.ReadHeaderTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_header_timeout",
			Message: "read header timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.shutdown_timeout",
			Message: "shutdown timeout must be non-negative",
		})
	}

	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes must be non-negative",
		})
	}
	if cfg.MaxHeaderBytes > 10*1024*1024 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes exceeds reasonable limit (10MB)",
		})
	}

	return errs
}

func validateCatAPI(cfg *CatAPIConfig) []FieldError {
	var errs []FieldError

	if cfg.SearchURL == "" {
		errs = append(errs, FieldError{
			Field:   "catapi.search_url",
			Message: "search URL is required",
		})
	} else if u, err := url.Parse(cfg.SearchURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, FieldError{
			Field:   "catapi.search_url",
			Message: fmt.Sprintf("invalid search URL %q: must be an absolute http(s) URL", cfg.SearchURL),
		})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "catapi.timeout",
			Message: "timeout must be positive",
		})
	}
	if cfg.MaxImageBytes <= 0 {
		errs = append(errs, FieldError{
			Field:   "catapi.max_image_bytes",
			Message: "max image bytes must be positive",
		})
	}

	return errs
}

func validateRender(cfg *RenderConfig) []FieldError {
	var errs []FieldError

	if cfg.Width <= 0 {
		errs = append(errs, FieldError{
			Field:   "render.width",
			Message: "width must be positive",
		})
	} else if cfg.Width > 1000 {
		errs = append(errs, FieldError{
			Field:   "render.width",
			Message: "width exceeds reasonable limit (1000 columns)",
		})
	}

	if err := ascii.CheckRamp(cfg.Characters); err != nil {
		errs = append(errs, FieldError{
			Field:   "render.characters",
			Message: err.Error(),
		})
	}

	if cfg.MaxPixels <= 0 {
		errs = append(errs, FieldError{
			Field:   "render.max_pixels",
			Message: "max pixels must be positive",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.logging.level",
				Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn' or 'error', optionally with an offset", cfg.Logging.Level),
			})
		}
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Path == "" || !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with '/' when metrics are enabled",
			})
		} else if cfg.Metrics.Path == HealthPath {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: fmt.Sprintf("metrics path %q is reserved for the health endpoint", HealthPath),
			})
		}
		if _, _, err := net.SplitHostPort(cfg.Metrics.ListenAddress); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: fmt.Sprintf("invalid listen address %q: %v", cfg.Metrics.ListenAddress, err),
			})
		}
	}

	if cfg.Health.ProbeSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Health.ProbeSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.health.probe_schedule",
				Message: fmt.Sprintf("invalid cron schedule %q: %v", cfg.Health.ProbeSchedule, err),
			})
		}
	}

	return errs
}
