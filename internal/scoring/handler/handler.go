package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"loanrisk/internal/scoring"
	"loanrisk/internal/scoring/metrics"
	"loanrisk/pkg/platform/httputil"
	"loanrisk/pkg/requestcontext"
)

// Service defines the interface for scoring operations.
type Service interface {
	Assess(ctx context.Context, req scoring.AssessRequest) (*scoring.RiskAssessment, error)
	Schema(ctx context.Context) (*scoring.SchemaInfo, error)
}

// Handler wires risk endpoints to the scoring service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a risk handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts risk endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/risk/assess", h.HandleAssess)
	r.Get("/v1/risk/schema", h.HandleSchema)
}

// HandleAssess handles POST /v1/risk/assess requests.
func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AssessRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		h.metrics.IncrementFailure(metrics.ReasonInvalidRequest)
		return
	}

	result, err := h.service.Assess(ctx, scoring.AssessRequest{
		Applicant:       req.Applicant(),
		IncludeFeatures: req.IncludeFeatures,
	})
	if err != nil {
		// Applicant attributes are never logged.
		h.logger.ErrorContext(ctx, "risk assessment failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "risk assessed",
		"request_id", requestID,
		"model_version", result.ModelVersion,
		"tier", result.Tier,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromAssessment(result))
}

// HandleSchema handles GET /v1/risk/schema requests.
func (h *Handler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	info, err := h.service.Schema(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "schema lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromSchema(info))
}
