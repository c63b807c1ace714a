package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanrisk/internal/scoring/handler"
)

const (
	testModel  = "../../internal/model/testdata/logistic.json"
	testSchema = "../../internal/model/testdata/feature_names.json"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--model", testModel, "--feature-names", testSchema))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)

	assert.Contains(t, out, "Model: example-logistic-2025.1 (logistic)")
	assert.Contains(t, out, "Prediction: No Default")
	assert.Contains(t, out, "Probability of default: 0.2186")
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect")
	require.NoError(t, err)

	assert.Contains(t, out, "Features: 37")
	assert.Contains(t, out, "LIMIT_BAL")
	assert.Contains(t, out, "AGE")
}

func TestScore(t *testing.T) {
	out, err := run(t, "score",
		"--age", "35", "--income", "65000", "--amount", "20000",
		"--credit-score", "700", "--employment-years", "5", "--debt-ratio", "0.3",
		"--features",
	)
	require.NoError(t, err)

	var resp handler.AssessResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.InDelta(t, 0.2403, resp.Probability, 1e-4)
	assert.Equal(t, "LOW", resp.Tier)
	assert.Equal(t, "example-logistic-2025.1", resp.ModelVersion)
	assert.Len(t, resp.Features, 37)
}

func TestScore_RejectsOutOfRange(t *testing.T) {
	_, err := run(t, "score",
		"--age", "12", "--income", "65000", "--amount", "20000",
		"--credit-score", "700", "--employment-years", "5", "--debt-ratio", "0.3",
	)
	assert.ErrorContains(t, err, "age must be between 18 and 100")
}

func TestScore_RequiresFlags(t *testing.T) {
	_, err := run(t, "score", "--age", "35")
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("RISKCTL_CLASSIFIER_VERSION", "ignored-for-local")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"inspect", "--feature-names", testSchema})
	t.Setenv("RISKCTL_MODEL", testModel)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Source:   "+testModel)
}
