package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the scrape handler for the collector's registry.
//
//	mux.Handle(cfg.Path, collector.Handler())
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

// NewMux returns a mux serving the collector on path.
func NewMux(c *Collector, path string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET "+path, c.Handler())
	return mux
}
