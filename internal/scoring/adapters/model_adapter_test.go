package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanrisk/internal/features"
	"loanrisk/internal/model"
	"loanrisk/pkg/platform/sentinel"
)

func TestHandleProvider_ExposesArtifact(t *testing.T) {
	artifact, err := model.ParseClassifier(
		[]byte(`{"version": "v9", "kind": "logistic", "intercept": 0, "coefficients": [0, 0]}`),
		[]string{"AGE", "PAY_0"},
	)
	require.NoError(t, err)

	classifier, err := NewHandleProvider(model.NewStaticHandle(artifact)).Classifier(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "v9", classifier.Version())
	assert.Equal(t, "logistic", classifier.Kind())
	assert.Equal(t, []string{"AGE", "PAY_0"}, classifier.FeatureNames())

	p, err := classifier.Score(context.Background(), features.NewVector([]string{"AGE", "PAY_0"}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)
}

func TestHandleProvider_PropagatesLoadError(t *testing.T) {
	handle := model.NewHandle(func(context.Context) (*model.Artifact, error) {
		return nil, errors.Join(sentinel.ErrNotFound, errors.New("model.json missing"))
	})

	_, err := NewHandleProvider(handle).Classifier(context.Background())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
