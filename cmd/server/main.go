package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "loanrisk/internal/http"
	"loanrisk/internal/model"
	"loanrisk/internal/model/source"
	"loanrisk/internal/platform/config"
	"loanrisk/internal/platform/httpserver"
	"loanrisk/internal/platform/logger"
	platformmetrics "loanrisk/internal/platform/metrics"
	redisclient "loanrisk/internal/platform/redis"
	rlmetrics "loanrisk/internal/ratelimit/metrics"
	rlmiddleware "loanrisk/internal/ratelimit/middleware"
	"loanrisk/internal/ratelimit/ports"
	rlservice "loanrisk/internal/ratelimit/service"
	"loanrisk/internal/ratelimit/store/bucket"
	"loanrisk/internal/scoring"
	"loanrisk/internal/scoring/adapters"
	scoringhandler "loanrisk/internal/scoring/handler"
	scoringmetrics "loanrisk/internal/scoring/metrics"
)

const sweepInterval = time.Minute

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	platformMetrics := platformmetrics.New()
	handle := model.NewHandle(source.LoadFunc(cfg.Model),
		model.WithLoadObserver(platformMetrics.ObserveModelLoad))
	warmModel(ctx, log, handle)

	scoringMetrics := scoringmetrics.New()
	svc := scoring.NewService(adapters.NewHandleProvider(handle),
		scoring.WithLogger(log),
		scoring.WithMetrics(scoringMetrics),
	)

	limiter, closeLimiter := buildRateLimiter(ctx, cfg, log)
	defer closeLimiter()

	router := httpapi.NewRouter(httpapi.Config{
		Logger: log,
		Risk:   scoringhandler.New(svc, log, scoringMetrics),
		Ready: func(ctx context.Context) error {
			_, err := handle.Get(ctx)
			return err
		},
		RateLimit:      rlmiddleware.New(limiter, log, rlmiddleware.WithDisabled(cfg.RateLimit.Disabled)).RateLimit,
		Metrics:        promhttp.Handler(),
		Timeout:        apiTimeout(cfg.Model.ClassifierTimeout),
		TrustedProxies: cfg.Server.TrustedProxies,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting loanrisk", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// warmModel loads the artifact before serving. A failure is logged and the
// server still starts; /readyz and scoring report it until restart.
func warmModel(ctx context.Context, log *slog.Logger, handle *model.Handle) {
	artifact, err := handle.Get(ctx)
	if err != nil {
		log.Error("model load failed; risk endpoints will return 503", "error", err)
		return
	}
	info := artifact.Info()
	log.Info("model loaded",
		"model_version", info.Version,
		"kind", info.Kind,
		"source", info.Source,
		"features", len(artifact.FeatureNames()),
	)
}

// buildRateLimiter uses Redis when configured, with the in-process store as
// fallback. Without Redis the in-process store is primary.
func buildRateLimiter(ctx context.Context, cfg config.Config, log *slog.Logger) (*rlservice.Service, func()) {
	memory := bucket.NewInMemoryBucketStore()
	go sweep(ctx, memory)

	var primary ports.BucketStore = memory
	var fallback ports.BucketStore
	closeFn := func() {}

	client, err := redisclient.New(ctx, cfg.Redis)
	switch {
	case err != nil:
		log.Warn("redis unavailable, using in-memory rate limit store", "error", err)
	case client != nil:
		primary = bucket.NewRedisBucketStore(client.Client)
		fallback = memory
		closeFn = func() { _ = client.Close() }
		log.Info("using redis rate limit store")
	}

	opts := []rlservice.Option{
		rlservice.WithLogger(log),
		rlservice.WithMetrics(rlmetrics.New()),
		rlservice.WithLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window),
	}
	if fallback != nil {
		opts = append(opts, rlservice.WithFallback(fallback))
	}

	svc, err := rlservice.New(primary, opts...)
	if err != nil {
		log.Error("rate limiter setup failed", "error", err)
		os.Exit(1)
	}
	return svc, closeFn
}

func sweep(ctx context.Context, store *bucket.InMemoryBucketStore) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Sweep()
		}
	}
}

// apiTimeout leaves the classifier call room to fail on its own timeout so
// the scoring handler reports it.
func apiTimeout(classifier time.Duration) time.Duration {
	const floor = 10 * time.Second
	if d := classifier + time.Second; d > floor {
		return d
	}
	return floor
}
