package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"loanrisk/internal/ratelimit/models"
	dErrors "loanrisk/pkg/domain-errors"
	"loanrisk/pkg/platform/httputil"
	"loanrisk/pkg/platform/privacy"
	"loanrisk/pkg/requestcontext"
)

const (
	HeaderLimit     = "X-RateLimit-Limit"
	HeaderRemaining = "X-RateLimit-Remaining"
	HeaderReset     = "X-RateLimit-Reset"
	HeaderStatus    = "X-RateLimit-Status"
	HeaderRetry     = "Retry-After"
)

type RateLimiter interface {
	CheckIP(ctx context.Context, ip string) (*models.Decision, error)
}

type Middleware struct {
	limiter  RateLimiter
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit limits requests per client IP. A limiter error lets the request
// through; the limiter protects capacity and must not take the API down with
// its store.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)

		decision, err := m.limiter.CheckIP(ctx, ip)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check IP rate limit",
				"request_id", requestcontext.RequestID(ctx),
				"ip_prefix", privacy.AnonymizeIP(ip),
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		// Add headers regardless of outcome
		addRateLimitHeaders(w, decision)

		if !decision.Allowed {
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"ip_prefix", privacy.AnonymizeIP(ip),
				"degraded", decision.Degraded,
			)
			writeRateLimitExceeded(w, decision.Result)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func addRateLimitHeaders(w http.ResponseWriter, decision *models.Decision) {
	if decision == nil || decision.Result == nil {
		return
	}
	w.Header().Set(HeaderLimit, strconv.Itoa(decision.Limit))
	w.Header().Set(HeaderRemaining, strconv.Itoa(decision.Remaining))
	w.Header().Set(HeaderReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))
	if decision.Degraded {
		w.Header().Set(HeaderStatus, "degraded")
	}
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.Result) {
	w.Header().Set(HeaderRetry, strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.ExceededResponse{
		Error:            string(dErrors.CodeRateLimited),
		ErrorDescription: "Too many requests from this IP address. Please try again later.",
		RetryAfter:       result.RetryAfter,
	})
}
