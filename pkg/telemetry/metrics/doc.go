// Package metrics provides Prometheus metrics for catascii.
//
// # Metrics
//
// Request metrics (public handler):
//   - catascii_requests_total{status}
//   - catascii_request_duration_seconds
//   - catascii_pipeline_errors_total{kind}
//   - catascii_image_bytes
//
// Upstream metrics (cat API client and probe):
//   - catascii_upstream_requests_total{target,outcome}
//   - catascii_upstream_duration_seconds{target}
//   - catascii_upstream_up
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	client := art.NewClient(art.ClientConfig{Observer: collector, ...}, logger)
//	adminMux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// A nil *Collector, or one built from a disabled config, accepts every
// Record call and does nothing, so callers never need to branch.
package metrics
