package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanrisk/internal/features"
	"loanrisk/internal/model"
	"loanrisk/pkg/platform/circuit"
	"loanrisk/pkg/platform/sentinel"
)

var schema = []string{"AGE", "LIMIT_BAL", "PAY_0"}

func classifierServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestPredict_SendsVectorAndReturnsProbability(t *testing.T) {
	var got predictRequest
	srv := classifierServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"probability": 0.42}`))
	})

	c := New(srv.URL, "remote-v3", schema)
	p, err := c.Predict(context.Background(), []float64{-0.052, -1.137, 0})
	require.NoError(t, err)

	assert.InDelta(t, 0.42, p, 1e-12)
	assert.Equal(t, "remote-v3", got.ModelVersion)
	assert.Equal(t, schema, got.FeatureNames)
	assert.Equal(t, []float64{-0.052, -1.137, 0}, got.Values)
}

func TestPredict_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusBadGateway, body: `{}`, wantErr: sentinel.ErrUnavailable},
		{name: "throttled", status: http.StatusTooManyRequests, body: `{}`, wantErr: sentinel.ErrUnavailable},
		{name: "shape rejected", status: http.StatusUnprocessableEntity, body: `bad shape`, wantErr: sentinel.ErrSchemaMismatch},
		{name: "probability out of range", status: http.StatusOK, body: `{"probability": 1.5}`},
		{name: "missing probability", status: http.StatusOK, body: `{}`},
		{name: "malformed body", status: http.StatusOK, body: `{"probability":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := classifierServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := New(srv.URL, "v", schema).Predict(context.Background(), []float64{0, 0, 0})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPredict_RejectsWrongWidthWithoutCalling(t *testing.T) {
	var calls atomic.Int32
	srv := classifierServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"probability": 0.1}`))
	})

	_, err := New(srv.URL, "v", schema).Predict(context.Background(), []float64{0})
	assert.ErrorIs(t, err, sentinel.ErrSchemaMismatch)
	assert.Zero(t, calls.Load())
}

func slowClassifier(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()
	return classifierServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
			_, _ = w.Write([]byte(`{"probability": 0.1}`))
		case <-r.Context().Done():
		}
	})
}

func TestPredict_TimeoutKeepsDeadlineInChain(t *testing.T) {
	srv := slowClassifier(t, 500*time.Millisecond)
	c := New(srv.URL, "v", schema, WithTimeout(20*time.Millisecond))

	_, err := c.Predict(context.Background(), []float64{0, 0, 0})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestPredict_CallerDeadlineKeepsDeadlineInChain(t *testing.T) {
	srv := slowClassifier(t, 500*time.Millisecond)
	c := New(srv.URL, "v", schema)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Predict(ctx, []float64{0, 0, 0})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPredict_ClientTimeoutsCountAgainstBreaker(t *testing.T) {
	srv := slowClassifier(t, 500*time.Millisecond)
	breaker := circuit.New("classifier", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Minute))
	c := New(srv.URL, "v", schema, WithTimeout(10*time.Millisecond), WithBreaker(breaker))

	for range 2 {
		_, err := c.Predict(context.Background(), []float64{0, 0, 0})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.True(t, c.Breaker().IsOpen())
}

func TestPredict_CallerCancellationLeavesBreakerClosed(t *testing.T) {
	var slow atomic.Bool
	slow.Store(true)
	srv := classifierServer(t, func(w http.ResponseWriter, r *http.Request) {
		if slow.Load() {
			<-r.Context().Done()
			return
		}
		_, _ = w.Write([]byte(`{"probability": 0.3}`))
	})
	breaker := circuit.New("classifier", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Minute))
	c := New(srv.URL, "v", schema, WithBreaker(breaker))

	for range 5 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		_, err := c.Predict(ctx, []float64{0, 0, 0})
		cancel()
		require.ErrorIs(t, err, context.DeadlineExceeded)
	}
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Predict(canceled, []float64{0, 0, 0})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, c.Breaker().IsOpen())

	slow.Store(false)
	p, err := c.Predict(context.Background(), []float64{0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, p, 1e-12)
}

func TestPredict_UnreachableIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, "v", schema).Predict(context.Background(), []float64{0, 0, 0})
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestPredict_BreakerFailsFastWhileOpen(t *testing.T) {
	var calls atomic.Int32
	srv := classifierServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	now := time.Unix(0, 0)
	breaker := circuit.New("classifier",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	c := New(srv.URL, "v", schema, WithBreaker(breaker))

	for range 2 {
		_, err := c.Predict(context.Background(), []float64{0, 0, 0})
		require.ErrorIs(t, err, sentinel.ErrUnavailable)
	}
	require.True(t, c.Breaker().IsOpen())

	_, err := c.Predict(context.Background(), []float64{0, 0, 0})
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the classifier")

	now = now.Add(time.Minute)
	_, _ = c.Predict(context.Background(), []float64{0, 0, 0})
	assert.Equal(t, int32(3), calls.Load(), "one probe after cooldown")
}

func TestNewArtifact_ScoresThroughRemote(t *testing.T) {
	srv := classifierServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"probability": 0.87}`))
	})

	a, err := NewArtifact(srv.URL, "remote-v1", schema)
	require.NoError(t, err)
	assert.Equal(t, model.KindRemote, a.Kind())
	assert.Equal(t, srv.URL, a.Info().Source)

	p, err := a.Score(context.Background(), features.NewVector(schema))
	require.NoError(t, err)
	assert.InDelta(t, 0.87, p, 1e-12)
}
