// Package api provides the HTTP diagnostics server for the sync-environment daemon.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	v0 "github.com/driftlock/syncenv/internal/api/v0"
	"github.com/driftlock/syncenv/pkg/monitor"
)

// ServerOption configures the diagnostics server
type ServerOption func(*serverConfig)

// serverConfig holds the server configuration
type serverConfig struct {
	middlewares []func(http.Handler) http.Handler
	registry    *promclient.Registry
}

// WithMiddlewares adds middleware to the server
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithPrometheusRegistry exposes the given registry at /metrics
func WithPrometheusRegistry(registry *promclient.Registry) ServerOption {
	return func(cfg *serverConfig) {
		cfg.registry = registry
	}
}

// NewServer creates and configures the HTTP router over the given monitor
func NewServer(mon *monitor.Manager, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{
		middlewares: []func(http.Handler) http.Handler{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	// Health check routes mounted directly at root
	r.Mount("/", v0.HealthRouter(mon))

	// Status API routes
	r.Mount("/v0", v0.Router(mon))

	if cfg.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
			cfg.registry,
			promhttp.HandlerOpts{Registry: cfg.registry},
		))
	}

	return r
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
