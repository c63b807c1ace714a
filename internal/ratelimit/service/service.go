// Package service applies the per-client request limit in front of the risk
// API, falling back to an in-process store when the shared store fails.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"loanrisk/internal/ratelimit/metrics"
	"loanrisk/internal/ratelimit/models"
	"loanrisk/internal/ratelimit/ports"
	"loanrisk/pkg/platform/circuit"
	"loanrisk/pkg/platform/privacy"
)

const (
	DefaultRequestsPerWindow = 60
	DefaultWindow            = time.Minute
)

// Service checks client IPs against one fixed limit.
type Service struct {
	primary  ports.BucketStore
	fallback ports.BucketStore
	breaker  *circuit.Breaker
	limit    int
	window   time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLimit sets requests per window. Non-positive values keep the default.
func WithLimit(requests int, window time.Duration) Option {
	return func(s *Service) {
		if requests > 0 {
			s.limit = requests
		}
		if window > 0 {
			s.window = window
		}
	}
}

// WithFallback sets the store used while the primary's breaker is open.
func WithFallback(store ports.BucketStore) Option {
	return func(s *Service) {
		s.fallback = store
	}
}

// WithBreaker replaces the default breaker guarding the primary store.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		if b != nil {
			s.breaker = b
		}
	}
}

func New(primary ports.BucketStore, opts ...Option) (*Service, error) {
	if primary == nil {
		return nil, errors.New("buckets store is required")
	}
	s := &Service{
		primary: primary,
		breaker: circuit.New("ratelimit-store"),
		limit:   DefaultRequestsPerWindow,
		window:  DefaultWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Limit returns the configured requests per window.
func (s *Service) Limit() (int, time.Duration) {
	return s.limit, s.window
}

// CheckIP counts one request for ip. While the primary store is failing the
// decision comes from the fallback store and is marked degraded. Without a
// fallback a primary error is returned and the caller decides.
func (s *Service) CheckIP(ctx context.Context, ip string) (*models.Decision, error) {
	key := models.NewKey(models.KeyPrefixIP, ip)

	result, err := s.primary.Allow(ctx, key, s.limit, s.window)
	if err != nil {
		useFallback, change := s.breaker.RecordFailure()
		s.observeChange(ctx, change)
		s.logWarn(ctx, "rate limit store failed", "error", err, "ip_prefix", privacy.AnonymizeIP(ip))
		if useFallback && s.fallback != nil {
			return s.checkFallback(ctx, key)
		}
		return nil, err
	}

	usePrimary, change := s.breaker.RecordSuccess()
	s.observeChange(ctx, change)
	if !usePrimary && s.fallback != nil {
		// Still recovering; keep counting in the fallback until the breaker closes.
		return s.checkFallback(ctx, key)
	}

	s.observe(result)
	return &models.Decision{Result: result}, nil
}

func (s *Service) checkFallback(ctx context.Context, key string) (*models.Decision, error) {
	result, err := s.fallback.Allow(ctx, key, s.limit, s.window)
	if err != nil {
		return nil, err
	}
	s.observe(result)
	return &models.Decision{Result: result, Degraded: true}, nil
}

func (s *Service) observe(result *models.Result) {
	if !result.Allowed {
		s.metrics.IncrementRejections()
	}
}

func (s *Service) observeChange(ctx context.Context, change circuit.StateChange) {
	switch {
	case change.Opened:
		s.metrics.SetDegraded(true)
		s.logWarn(ctx, "rate limit store circuit opened, using in-memory fallback")
	case change.Closed:
		s.metrics.SetDegraded(false)
		if s.logger != nil {
			s.logger.InfoContext(ctx, "rate limit store circuit closed")
		}
	}
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}
