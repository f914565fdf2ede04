package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"catascii-hq/catascii/pkg/art"
	"catascii-hq/catascii/pkg/web"
)

// Renderer produces one rendered random image per call.
// *art.Pipeline implements it.
type Renderer interface {
	Render(ctx context.Context) (art.Result, error)
}

// Recorder receives per-request metrics. *metrics.Collector implements it.
type Recorder interface {
	RecordRequest(status int, duration time.Duration)
	RecordPipelineError(kind string)
	RecordImageBytes(n int)
}

// ArtHandler serves GET /. Success is a 200 with the rendered HTML; any
// failure is logged with its kind and answered with the generic 500.
type ArtHandler struct {
	Renderer Renderer
	Metrics  Recorder
	Logger   *slog.Logger
}

// NewArtHandler creates an art handler. metrics may be nil.
func NewArtHandler(renderer Renderer, metrics Recorder, logger *slog.Logger) *ArtHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtHandler{Renderer: renderer, Metrics: metrics, Logger: logger}
}

// ServeHTTP implements http.Handler.
func (h *ArtHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	result, err := h.Renderer.Render(ctx)
	if result.Bytes > 0 && h.Metrics != nil {
		h.Metrics.RecordImageBytes(result.Bytes)
	}

	if err != nil {
		kind := art.Kind(err)
		h.Logger.ErrorContext(ctx, "failed to render cat",
			"error", err,
			"kind", kind,
			"image_url", result.Descriptor.URL,
		)
		if h.Metrics != nil {
			h.Metrics.RecordPipelineError(kind)
			h.Metrics.RecordRequest(http.StatusInternalServerError, time.Since(start))
		}
		web.WriteError(w)
		return
	}

	h.Logger.DebugContext(ctx, "rendered cat",
		"image_url", result.Descriptor.URL,
		"format", result.Format,
		"width", result.Width,
		"height", result.Height,
		"html_bytes", len(result.HTML),
	)
	if h.Metrics != nil {
		h.Metrics.RecordRequest(http.StatusOK, time.Since(start))
	}

	web.WriteHTML(w, result.HTML)
}

// NewMux routes exactly GET / to h. Every other path is 404 and every
// other method on / is 405.
func NewMux(h http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", h)
	return mux
}
