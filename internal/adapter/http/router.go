package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"subtitrari-noi-addon/internal/platform/metrics"
)

// NewRouter wires the plugin-host routes, /health and /metrics.
// updateGauges runs before each metrics scrape and may be nil.
func NewRouter(h *Handler, log *slog.Logger, met *metrics.Metrics, updateGauges func()) http.Handler {
	r := chi.NewRouter()
	r.Use(Logging(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Use(CORS)

	r.Get("/manifest.json", h.Manifest)
	r.Get("/subtitles/{type}/{id}", h.Subtitles)
	// Extra arguments (filename, video hash) are accepted and ignored.
	r.Get("/subtitles/{type}/{id}/*", h.Subtitles)
	r.Get("/health", h.Health)
	if met != nil {
		r.Method(http.MethodGet, "/metrics", met.Handler(updateGauges))
	}

	return r
}
