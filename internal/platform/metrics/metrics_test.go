package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanrisk/internal/model"
)

type constScorer float64

func (c constScorer) Predict(context.Context, []float64) (float64, error) { return float64(c), nil }

func TestObserveModelLoad(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	artifact, err := model.NewArtifact(model.Info{
		Version: "v-test",
		Kind:    model.KindLogistic,
		Source:  "models/model.json",
	}, []string{"AGE"}, constScorer(0.3))
	require.NoError(t, err)

	m.ObserveModelLoad(artifact, nil)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.ModelInfo.WithLabelValues("v-test", "logistic", "models/model.json")))
	assert.Equal(t, 0.0, promtest.ToFloat64(m.ModelLoadFailures))

	m.ObserveModelLoad(nil, errors.New("open models/model.json: no such file"))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.ModelLoadFailures))
}

func TestObserveModelLoad_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveModelLoad(nil, errors.New("boom")) })
}
