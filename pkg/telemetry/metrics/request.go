package metrics

import (
	"time"

	"catascii-hq/catascii/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks the public handler.
type RequestMetrics struct {
	// Total request count by HTTP status
	requestsTotal *prometheus.CounterVec

	// Request duration histogram
	requestDuration prometheus.Histogram

	// Failed requests by error kind
	errorsTotal *prometheus.CounterVec

	// Downloaded image size
	imageBytes prometheus.Histogram
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_total",
				Help:      "Total number of requests handled",
			},
			[]string{"status"},
		),

		requestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of handled requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "pipeline_errors_total",
				Help:      "Total number of failed requests by error kind",
			},
			[]string{"kind"},
		),

		imageBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "image_bytes",
				Help:      "Size of downloaded images in bytes",
				Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 10), // 16KB to 8MB
			},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.errorsTotal,
		rm.imageBytes,
	)

	return rm
}

// RecordRequest records one request with its status label.
func (rm *RequestMetrics) RecordRequest(status string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(status).Inc()
	rm.requestDuration.Observe(duration.Seconds())
}

// RecordError counts a failure of the given kind.
func (rm *RequestMetrics) RecordError(kind string) {
	rm.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordImageBytes observes an image size.
func (rm *RequestMetrics) RecordImageBytes(n int) {
	rm.imageBytes.Observe(float64(n))
}
