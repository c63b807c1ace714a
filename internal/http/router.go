package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "loanrisk/pkg/domain-errors"
	"loanrisk/pkg/platform/httputil"
	"loanrisk/pkg/platform/middleware/metadata"
	"loanrisk/pkg/platform/middleware/request"
	"loanrisk/pkg/platform/middleware/requesttime"
)

// ReadinessCheck reports whether the service can score requests.
type ReadinessCheck func(ctx context.Context) error

// RouteRegistrar mounts a module's endpoints.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// Config holds everything the router needs. RateLimit and Metrics are optional.
// TrustedProxies lists the peers whose forwarding headers name the client.
type Config struct {
	Logger         *slog.Logger
	Risk           RouteRegistrar
	Ready          ReadinessCheck
	RateLimit      func(http.Handler) http.Handler
	Metrics        http.Handler
	Timeout        time.Duration
	TrustedProxies []netip.Prefix
}

// NewRouter wires the public endpoints. Probes and metrics sit outside the
// rate limiter so monitoring never competes with client traffic.
func NewRouter(cfg Config) http.Handler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recover(cfg.Logger))
	r.Use(metadata.NewResolver(cfg.TrustedProxies).Middleware)
	r.Use(requesttime.Middleware)
	r.Use(request.AccessLog(cfg.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readiness(cfg.Ready, cfg.Logger))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Group(func(api chi.Router) {
		api.Use(request.Deadline(cfg.Timeout))
		if cfg.RateLimit != nil {
			api.Use(cfg.RateLimit)
		}
		cfg.Risk.Register(api)
	})

	return r
}

func readiness(check ReadinessCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "readiness check failed", "error", err)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "model not loaded"))
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
