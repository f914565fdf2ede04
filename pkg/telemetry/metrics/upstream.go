package metrics

import (
	"catascii-hq/catascii/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks calls to the cat API and the image host.
type UpstreamMetrics struct {
	// Calls by target and outcome ("ok" or an error kind)
	requests *prometheus.CounterVec

	// Call latency by target
	duration *prometheus.HistogramVec

	// Result of the last probe (1=up, 0=down)
	up prometheus.Gauge
}

// NewUpstreamMetrics creates and registers upstream metrics with the provided registry.
func NewUpstreamMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream calls by target and outcome",
			},
			[]string{"target", "outcome"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_duration_seconds",
				Help:      "Upstream call latency in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"target"},
		),

		up: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_up",
				Help:      "Whether the last upstream probe succeeded (1=up, 0=down)",
			},
		),
	}

	registry.MustRegister(
		um.requests,
		um.duration,
		um.up,
	)

	return um
}

// RecordCall records one upstream call.
func (um *UpstreamMetrics) RecordCall(target, outcome string, seconds float64) {
	um.requests.WithLabelValues(target, outcome).Inc()
	um.duration.WithLabelValues(target).Observe(seconds)
}

// SetUp sets the probe gauge.
func (um *UpstreamMetrics) SetUp(up bool) {
	if up {
		um.up.Set(1)
		return
	}
	um.up.Set(0)
}
