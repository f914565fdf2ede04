// Package telemetry groups the observability packages used by catascii.
//
// # Components
//
//   - logging: JSON structured logging with a runtime-adjustable level and
//     request id propagation
//   - metrics: Prometheus collectors for the art endpoint and upstream calls
//   - health: scheduled upstream probe and the status endpoint it feeds
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	if err != nil {
//		return err
//	}
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	collector.RecordRequest(http.StatusOK, time.Since(start))
//
// Metrics and the health status are served on the admin listener only, so
// the public surface stays a single route.
package telemetry
