// Package remote scores feature vectors against an externally hosted
// classifier over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"loanrisk/internal/model"
	"loanrisk/pkg/platform/circuit"
	"loanrisk/pkg/platform/sentinel"
)

const (
	defaultTimeout = 2 * time.Second
	maxResponse    = 64 << 10
)

var tracer = otel.Tracer("loanrisk/internal/model/remote")

type predictRequest struct {
	ModelVersion string    `json:"model_version"`
	FeatureNames []string  `json:"feature_names"`
	Values       []float64 `json:"values"`
}

type predictResponse struct {
	Probability *float64 `json:"probability"`
}

// Client implements model.Scorer by POSTing the vector to a scoring endpoint.
// Calls are never retried; repeated failures open the breaker and the client
// fails fast with sentinel.ErrUnavailable until a probe succeeds. A call that
// outlives the client timeout fails with context.DeadlineExceeded in its
// chain. Cancellation by the caller is not counted against the classifier.
type Client struct {
	url        string
	version    string
	schema     []string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *circuit.Breaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout bounds every scoring call.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithBreaker replaces the default breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(cl *Client) {
		if b != nil {
			cl.breaker = b
		}
	}
}

// New creates a client for url. schema is sent with every request so the
// server can verify column order.
func New(url, version string, schema []string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		version:    version,
		schema:     append([]string(nil), schema...),
		timeout:    defaultTimeout,
		httpClient: &http.Client{},
		breaker:    circuit.New("classifier", circuit.WithCooldown(5*time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewArtifact binds a remote client to schema as a model.Artifact.
func NewArtifact(url, version string, schema []string, opts ...Option) (*model.Artifact, error) {
	return model.NewArtifact(model.Info{
		Version: version,
		Kind:    model.KindRemote,
		Source:  url,
	}, schema, New(url, version, schema, opts...))
}

// Breaker exposes the client's breaker state (readiness, tests).
func (c *Client) Breaker() *circuit.Breaker {
	return c.breaker
}

// Predict implements model.Scorer.
func (c *Client) Predict(ctx context.Context, values []float64) (float64, error) {
	ctx, span := tracer.Start(ctx, "remote.Predict")
	defer span.End()
	span.SetAttributes(
		attribute.String("model.version", c.version),
		attribute.Int("model.features", len(values)),
	)

	if !c.breaker.ShouldAttempt() {
		span.SetStatus(codes.Error, "circuit open")
		return 0, fmt.Errorf("%w: classifier circuit open", sentinel.ErrUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	p, err := c.predict(callCtx, values)
	if err != nil {
		// Neither a structural rejection nor the caller giving up says
		// anything about the classifier's health.
		if !errors.Is(err, sentinel.ErrSchemaMismatch) && ctx.Err() == nil {
			c.breaker.RecordFailure()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	c.breaker.RecordSuccess()
	span.SetAttributes(attribute.Float64("model.probability", p))
	return p, nil
}

func (c *Client) predict(ctx context.Context, values []float64) (float64, error) {
	if len(values) != len(c.schema) {
		return 0, fmt.Errorf("%w: got %d values, want %d", sentinel.ErrSchemaMismatch, len(values), len(c.schema))
	}

	body, err := json.Marshal(predictRequest{
		ModelVersion: c.version,
		FeatureNames: c.schema,
		Values:       values,
	})
	if err != nil {
		return 0, fmt.Errorf("encode classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, transportError(ctx, "classifier request", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return 0, transportError(ctx, "read classifier response", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return 0, fmt.Errorf("%w: classifier rejected vector: %s", sentinel.ErrSchemaMismatch, bytes.TrimSpace(data))
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return 0, fmt.Errorf("%w: classifier returned %d", sentinel.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("classifier returned %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, fmt.Errorf("decode classifier response: %w", err)
	}
	if out.Probability == nil {
		return 0, errors.New("classifier response has no probability")
	}
	p := *out.Probability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("classifier returned probability %v outside [0,1]", p)
	}
	return p, nil
}

// transportError keeps context errors in the chain so callers can tell a
// timeout or cancellation apart from an unreachable classifier.
func transportError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: %w: %v", op, context.DeadlineExceeded, err)
	}
	return fmt.Errorf("%w: %s: %v", sentinel.ErrUnavailable, op, err)
}
