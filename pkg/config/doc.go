// Package config provides configuration management for catascii.
//
// Configuration is built from four layers, later layers overriding earlier
// ones:
//
//  1. Default values (defaults.go)
//  2. An optional YAML file
//  3. Environment variable overrides (CATASCII_SECTION_FIELD)
//  4. Validation (fails fast if invalid)
//
// Loading:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// An empty path skips the file and yields defaults plus environment.
//
// # Environment Variables
//
// Log verbosity is controlled by CATASCII_LOG_LEVEL, parsed as a slog level
// expression ("debug", "info", "warn", "error", "info+2"). An invalid value
// fails validation, which the serve command treats as fatal.
//
// Other overrides follow the section layout, for example:
//
//   - CATASCII_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - CATASCII_CATAPI_API_KEY overrides catapi.api_key
//   - CATASCII_TELEMETRY_METRICS_ENABLED overrides telemetry.metrics.enabled
//
// # Example Configuration
//
//	server:
//	  listen_address: "0.0.0.0:5000"
//	  shutdown_timeout: "30s"
//	catapi:
//	  search_url: "https://api.thecatapi.com/v1/images/search"
//	  timeout: "30s"
//	render:
//	  width: 120
//	  colored: true
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//	  metrics:
//	    enabled: true
//	    listen_address: "127.0.0.1:9090"
//
// # Hot Reload
//
// Watcher observes the configuration file with fsnotify and hands every
// successfully reloaded Config to a callback. The serve command uses it to
// change the log level without a restart.
package config
