package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(&Config{})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}

	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		errorField string
	}{
		{
			name:       "malformed listen address",
			mutate:     func(c *Config) { c.Server.ListenAddress = "localhost" },
			errorField: "server.listen_address",
		},
		{
			name:       "negative shutdown timeout",
			mutate:     func(c *Config) { c.Server.ShutdownTimeout = -1 },
			errorField: "server.shutdown_timeout",
		},
		{
			name:       "excessive header bytes",
			mutate:     func(c *Config) { c.Server.MaxHeaderBytes = 20 * 1024 * 1024 },
			errorField: "server.max_header_bytes",
		},
		{
			name:       "relative search URL",
			mutate:     func(c *Config) { c.CatAPI.SearchURL = "/v1/images/search" },
			errorField: "catapi.search_url",
		},
		{
			name:       "non-http search URL",
			mutate:     func(c *Config) { c.CatAPI.SearchURL = "ftp://example.com/cats" },
			errorField: "catapi.search_url",
		},
		{
			name:       "zero image cap",
			mutate:     func(c *Config) { c.CatAPI.MaxImageBytes = 0 },
			errorField: "catapi.max_image_bytes",
		},
		{
			name:       "single character ramp",
			mutate:     func(c *Config) { c.Render.Characters = "#" },
			errorField: "render.characters",
		},
		{
			name:       "non-ASCII ramp",
			mutate:     func(c *Config) { c.Render.Characters = " ░▒▓█" },
			errorField: "render.characters",
		},
		{
			name:       "huge width",
			mutate:     func(c *Config) { c.Render.Width = 5000 },
			errorField: "render.width",
		},
		{
			name:       "unknown log level",
			mutate:     func(c *Config) { c.Telemetry.Logging.Level = "verbose" },
			errorField: "telemetry.logging.level",
		},
		{
			name:       "unknown log format",
			mutate:     func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			errorField: "telemetry.logging.format",
		},
		{
			name: "metrics path without slash",
			mutate: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.Path = "metrics"
			},
			errorField: "telemetry.metrics.path",
		},
		{
			name: "metrics on server address",
			mutate: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.ListenAddress = c.Server.ListenAddress
			},
			errorField: "telemetry.metrics.listen_address",
		},
		{
			name: "metrics on the health path",
			mutate: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.Path = HealthPath
			},
			errorField: "telemetry.metrics.path",
		},
		{
			name: "write timeout shorter than two upstream calls",
			mutate: func(c *Config) {
				c.Server.WriteTimeout = 60 * time.Second
				c.CatAPI.Timeout = 30 * time.Second
			},
			errorField: "server.write_timeout",
		},
		{
			name:       "bad probe schedule",
			mutate:     func(c *Config) { c.Telemetry.Health.ProbeSchedule = "every so often" },
			errorField: "telemetry.health.probe_schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("expected error for field %q, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestValidate_WriteTimeoutRelation(t *testing.T) {
	tests := []struct {
		name    string
		write   time.Duration
		catapi  time.Duration
		wantErr bool
	}{
		{name: "defaults", write: DefaultWriteTimeout, catapi: DefaultCatAPITimeout},
		{name: "just above", write: 61 * time.Second, catapi: 30 * time.Second},
		{name: "equal to twice", write: 60 * time.Second, catapi: 30 * time.Second, wantErr: true},
		{name: "no write deadline", write: 0, catapi: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Server.WriteTimeout = tt.write
			cfg.CatAPI.Timeout = tt.catapi

			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_LogLevelExpressions(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "error", "info+2", "debug-4"} {
		cfg := DefaultConfig()
		cfg.Telemetry.Logging.Level = level
		if err := Validate(cfg); err != nil {
			t.Errorf("level %q should be valid: %v", level, err)
		}
	}
}

func TestValidate_ProbeScheduleDescriptors(t *testing.T) {
	for _, schedule := range []string{"@every 1m", "*/5 * * * *", "@hourly"} {
		cfg := DefaultConfig()
		cfg.Telemetry.Health.ProbeSchedule = schedule
		if err := Validate(cfg); err != nil {
			t.Errorf("schedule %q should be valid: %v", schedule, err)
		}
	}
}
