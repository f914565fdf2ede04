package metrics

import (
	"strconv"
	"time"

	"catascii-hq/catascii/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultDurationBuckets cover a search call plus an image download.
var DefaultDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Collector owns the registry and every metric family.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics  *RequestMetrics
	upstreamMetrics *UpstreamMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil a fresh one is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{registry: registry}
	if cfg != nil {
		c.config = *cfg
	}
	if c.config.Namespace == "" {
		c.config.Namespace = config.DefaultMetricsNamespace
	}
	if len(c.config.RequestDurationBuckets) == 0 {
		c.config.RequestDurationBuckets = DefaultDurationBuckets
	}

	c.requestMetrics = NewRequestMetrics(&c.config, registry)
	c.upstreamMetrics = NewUpstreamMetrics(&c.config, registry)

	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordRequest records one handled request.
func (c *Collector) RecordRequest(status int, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.requestMetrics.RecordRequest(strconv.Itoa(status), duration)
}

// RecordPipelineError counts a failed request by error kind.
func (c *Collector) RecordPipelineError(kind string) {
	if !c.enabled() {
		return
	}
	c.requestMetrics.RecordError(kind)
}

// RecordImageBytes observes the size of a downloaded image.
func (c *Collector) RecordImageBytes(n int) {
	if !c.enabled() {
		return
	}
	c.requestMetrics.RecordImageBytes(n)
}

// ObserveUpstream records one upstream call.
func (c *Collector) ObserveUpstream(target, outcome string, seconds float64) {
	if !c.enabled() {
		return
	}
	c.upstreamMetrics.RecordCall(target, outcome, seconds)
}

// SetUpstreamUp sets the probe gauge.
func (c *Collector) SetUpstreamUp(up bool) {
	if !c.enabled() {
		return
	}
	c.upstreamMetrics.SetUp(up)
}
