// Package httpapi assembles the HTTP surface. Handlers stay in their modules
// and register their own routes; this package only owns the middleware chain
// and the operational endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	platformmetrics "backoffice/internal/platform/metrics"
	platformmw "backoffice/internal/platform/middleware"
	"backoffice/pkg/platform/httputil"
	"backoffice/pkg/platform/middleware/metadata"
	"backoffice/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by module handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// Deps carries everything the router needs. Auth is optional; when set it
// wraps the API routes, leaving /healthz and /metrics open for probes and
// scrapers.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *platformmetrics.Metrics
	Auth     func(http.Handler) http.Handler
	Handlers []Registrar
	Health   map[string]HealthCheck
}

// NewRouter wires the middleware chain and mounts all handlers.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(platformmw.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/healthz", handleHealth(deps))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		if deps.Auth != nil {
			api.Use(deps.Auth)
		}
		for _, h := range deps.Handlers {
			h.Register(api)
		}
	})

	return r
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(deps.Health))
		for name, check := range deps.Health {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				checks[name] = "unhealthy"
				if deps.Logger != nil {
					deps.Logger.WarnContext(ctx, "health check failed",
						"check", name,
						"error", err,
					)
				}
				continue
			}
			checks[name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(checks) > 0 {
			body["checks"] = checks
		}
		httputil.WriteJSON(w, status, body)
	}
}
