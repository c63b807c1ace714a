// Package scoring turns applicant attributes into a risk assessment: map the
// attributes to the classifier's feature vector, score it, then apply the
// tier policy.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"loanrisk/internal/features"
	"loanrisk/internal/scoring/metrics"
	"loanrisk/internal/scoring/ports"
	dErrors "loanrisk/pkg/domain-errors"
	"loanrisk/pkg/platform/sentinel"
	"loanrisk/pkg/requestcontext"
)

var tracer = otel.Tracer("loanrisk/internal/scoring")

// Service runs the map, score and tier pipeline. It holds no per-request
// state; every call is independent.
type Service struct {
	provider ports.ArtifactProvider
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(provider ports.ArtifactProvider, opts ...Option) *Service {
	s := &Service{provider: provider}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assess scores one applicant. Either a complete assessment or an error is
// returned, never a partial result. Inputs are expected to be range-checked
// by the caller.
func (s *Service) Assess(ctx context.Context, req AssessRequest) (*RiskAssessment, error) {
	ctx, span := tracer.Start(ctx, "scoring.Assess")
	defer span.End()
	start := time.Now()
	defer func() {
		s.metrics.ObserveAssessLatency(time.Since(start))
	}()

	classifier, err := s.provider.Classifier(ctx)
	if err != nil {
		s.fail(ctx, span, metrics.ReasonModelUnavailable, err)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "model unavailable")
	}
	span.SetAttributes(attribute.String("model.version", classifier.Version()))

	vec := features.Map(req.Applicant, classifier.FeatureNames())

	probability, err := classifier.Score(ctx, vec)
	if err != nil {
		return nil, s.scoreError(ctx, span, err)
	}
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		err := fmt.Errorf("%w: classifier returned probability %v", sentinel.ErrInvalidState, probability)
		s.fail(ctx, span, metrics.ReasonInvalidOutput, err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "classifier returned an invalid probability")
	}

	result := BuildAssessment(probability, classifier.Version(), requestcontext.Now(ctx))
	if req.IncludeFeatures {
		result.Features = &vec
	}

	span.SetAttributes(
		attribute.Float64("risk.probability", probability),
		attribute.String("risk.tier", string(result.Tier)),
	)
	s.metrics.IncrementAssessment(string(result.Tier), probability)
	return result, nil
}

// Schema describes the loaded classifier.
func (s *Service) Schema(ctx context.Context) (*SchemaInfo, error) {
	classifier, err := s.provider.Classifier(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "model unavailable")
	}
	return &SchemaInfo{
		ModelVersion: classifier.Version(),
		Kind:         classifier.Kind(),
		FeatureNames: classifier.FeatureNames(),
	}, nil
}

func (s *Service) scoreError(ctx context.Context, span trace.Span, err error) error {
	switch {
	case errors.Is(err, sentinel.ErrSchemaMismatch):
		s.fail(ctx, span, metrics.ReasonSchemaMismatch, err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "feature vector does not match model schema")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.fail(ctx, span, metrics.ReasonTimeout, err)
		return dErrors.Wrap(err, dErrors.CodeTimeout, "classifier timed out")
	case errors.Is(err, sentinel.ErrUnavailable):
		s.fail(ctx, span, metrics.ReasonModelUnavailable, err)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "classifier unavailable")
	default:
		s.fail(ctx, span, metrics.ReasonClassifierError, err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "scoring failed")
	}
}

func (s *Service) fail(ctx context.Context, span trace.Span, reason string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	s.metrics.IncrementFailure(reason)
	if s.logger != nil {
		s.logger.WarnContext(ctx, "risk assessment failed",
			"request_id", requestcontext.RequestID(ctx),
			"reason", reason,
			"error", err,
		)
	}
}
