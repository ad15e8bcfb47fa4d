// Package api serves the assistant and its memory over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rcliao/text-assist/internal/assist"
	"github.com/rcliao/text-assist/internal/memory"
	"github.com/rcliao/text-assist/internal/telemetry"
)

// Deps are the collaborators the router serves. Gatherer may be nil, in
// which case /metrics is not mounted.
type Deps struct {
	Assistant      *assist.Assistant
	Memory         *memory.Store
	Metrics        *telemetry.Metrics
	Gatherer       prometheus.Gatherer
	Logger         *slog.Logger
	APIKey         string
	AllowedOrigins []string
	Version        string
}

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(d Deps) *chi.Mux {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger(logger, d.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(CORS(d.AllowedOrigins))

	healthH := &HealthHandler{mem: d.Memory, version: d.Version}
	assistH := &AssistHandler{assistant: d.Assistant}
	memoryH := &MemoryHandler{mem: d.Memory}

	r.Get("/health", healthH.Health)
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(d.APIKey))

		r.Route("/v1", func(r chi.Router) {
			r.Post("/route", assistH.Route)
			r.Post("/assist", assistH.Assist)

			r.Route("/memory", func(r chi.Router) {
				r.Get("/", memoryH.List)
				r.Post("/", memoryH.Add)
				r.Delete("/", memoryH.Clear)
				r.Post("/retrieve", memoryH.Retrieve)
				r.Post("/context", memoryH.Context)
				r.Get("/stats", memoryH.Stats)
				r.Get("/export", memoryH.Export)
				r.Post("/import", memoryH.Import)
				r.Get("/{id}", memoryH.Get)
				r.Delete("/{id}", memoryH.Delete)
			})
		})
	})

	return r
}
