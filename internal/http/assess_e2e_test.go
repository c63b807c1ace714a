package httpapi_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "loanrisk/internal/http"
	"loanrisk/internal/model"
	rlmiddleware "loanrisk/internal/ratelimit/middleware"
	rlservice "loanrisk/internal/ratelimit/service"
	"loanrisk/internal/ratelimit/store/bucket"
	"loanrisk/internal/scoring"
	"loanrisk/internal/scoring/adapters"
	scoringhandler "loanrisk/internal/scoring/handler"
	scoringmetrics "loanrisk/internal/scoring/metrics"
	"loanrisk/pkg/testutil"
)

func newServer(t *testing.T, load model.LoadFunc, limit int) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	handle := model.NewHandle(load)
	m := scoringmetrics.NewWithRegisterer(prometheus.NewRegistry())
	svc := scoring.NewService(adapters.NewHandleProvider(handle), scoring.WithMetrics(m), scoring.WithLogger(log))

	limiter, err := rlservice.New(bucket.NewInMemoryBucketStore(), rlservice.WithLimit(limit, time.Minute))
	require.NoError(t, err)

	return httpapi.NewRouter(httpapi.Config{
		Logger: log,
		Risk:   scoringhandler.New(svc, log, m),
		Ready: func(ctx context.Context) error {
			_, err := handle.Get(ctx)
			return err
		},
		RateLimit: rlmiddleware.New(limiter, log).RateLimit,
	})
}

func localModel(ctx context.Context) (*model.Artifact, error) {
	return model.Load(ctx, model.Paths{
		Model:        "../model/testdata/logistic.json",
		FeatureNames: "../model/testdata/feature_names.json",
	})
}

func baseline() map[string]any {
	return map[string]any{
		"age":                   35,
		"annual_income":         65000,
		"requested_loan_amount": 20000,
		"credit_score":          700,
		"employment_years":      5,
		"debt_to_income_ratio":  0.3,
	}
}

func TestAssessEndToEnd(t *testing.T) {
	server := newServer(t, localModel, 100)

	testutil.Given(t, "a loaded logistic model", func(t *testing.T) {
		rr := testutil.DoRequest(server, testutil.NewJSONRequest(t, http.MethodGet, "/readyz", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	testutil.When(t, "a typical applicant is assessed", func(t *testing.T) {
		body := baseline()
		body["include_features"] = true
		rr := testutil.DoRequest(server, testutil.NewJSONRequest(t, http.MethodPost, "/v1/risk/assess", body))

		testutil.Then(t, "the result is a LOW tier approval", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusOK)
			resp := testutil.UnmarshalResponse[scoringhandler.AssessResponse](t, rr)
			assert.InDelta(t, 0.2403, resp.Probability, 1e-4)
			assert.Equal(t, "LOW", resp.Tier)
			assert.Equal(t, "approve", resp.Recommendation)
			assert.Equal(t, "example-logistic-2025.1", resp.ModelVersion)
			require.Len(t, resp.Features, 37)
			assert.Equal(t, "LIMIT_BAL", resp.Features[0].Name)
		})
	})

	testutil.When(t, "a high-risk applicant is assessed", func(t *testing.T) {
		body := map[string]any{
			"age":                   22,
			"annual_income":         18000,
			"requested_loan_amount": 150000,
			"credit_score":          550,
			"employment_years":      1,
			"debt_to_income_ratio":  0.8,
		}
		rr := testutil.DoRequest(server, testutil.NewJSONRequest(t, http.MethodPost, "/v1/risk/assess", body))

		testutil.Then(t, "the result is MEDIUM tier and goes to review", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusOK)
			resp := testutil.UnmarshalResponse[scoringhandler.AssessResponse](t, rr)
			assert.InDelta(t, 0.7250, resp.Probability, 1e-4)
			assert.Equal(t, "MEDIUM", resp.Tier)
			assert.Empty(t, resp.Features)
		})
	})

	testutil.When(t, "an input is out of range", func(t *testing.T) {
		body := baseline()
		body["credit_score"] = 900
		rr := testutil.DoRequest(server, testutil.NewJSONRequest(t, http.MethodPost, "/v1/risk/assess", body))

		testutil.Then(t, "the request is rejected", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
		})
	})

	testutil.When(t, "the schema is requested", func(t *testing.T) {
		rr := testutil.DoRequest(server, testutil.NewJSONRequest(t, http.MethodGet, "/v1/risk/schema", nil))

		testutil.Then(t, "it lists the model's features", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusOK)
			resp := testutil.UnmarshalResponse[scoringhandler.SchemaResponse](t, rr)
			assert.Equal(t, 37, resp.FeatureCount)
			assert.Equal(t, "logistic", resp.Kind)
		})
	})
}

func TestAssessEndToEnd_ModelMissing(t *testing.T) {
	server := newServer(t, func(ctx context.Context) (*model.Artifact, error) {
		return model.Load(ctx, model.Paths{Model: "missing.json", FeatureNames: "missing.json"})
	}, 100)

	rr := testutil.DoRequest(server, testutil.NewJSONRequest(t, http.MethodPost, "/v1/risk/assess", baseline()))
	testutil.AssertStatusAndError(t, rr, http.StatusServiceUnavailable, "service_unavailable")

	rr = testutil.DoRequest(server, testutil.NewJSONRequest(t, http.MethodGet, "/readyz", nil))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestAssessEndToEnd_RateLimited(t *testing.T) {
	server := newServer(t, localModel, 2)

	for range 2 {
		rr := testutil.DoRequest(server, testutil.NewJSONRequest(t, http.MethodPost, "/v1/risk/assess", baseline()))
		testutil.AssertStatus(t, rr, http.StatusOK)
	}
	rr := testutil.DoRequest(server, testutil.NewJSONRequest(t, http.MethodPost, "/v1/risk/assess", baseline()))
	testutil.AssertStatusAndError(t, rr, http.StatusTooManyRequests, "rate_limit_exceeded")
	assert.NotEmpty(t, rr.Header().Get(rlmiddleware.HeaderRetry))
}
