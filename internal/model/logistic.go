package model

import (
	"context"
	"fmt"
	"math"

	"loanrisk/pkg/platform/sentinel"
)

// logistic is a fitted logistic regression: p = σ(b + w·x).
type logistic struct {
	intercept    float64
	coefficients []float64
}

func newLogistic(intercept float64, coefficients []float64, schema []string) (*logistic, error) {
	if len(coefficients) != len(schema) {
		return nil, fmt.Errorf("%w: logistic model has %d coefficients for %d features",
			sentinel.ErrInvalidState, len(coefficients), len(schema))
	}
	for i, c := range coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: coefficient for %s is not finite", sentinel.ErrInvalidState, schema[i])
		}
	}
	return &logistic{
		intercept:    intercept,
		coefficients: append([]float64(nil), coefficients...),
	}, nil
}

func (l *logistic) Predict(_ context.Context, values []float64) (float64, error) {
	if len(values) != len(l.coefficients) {
		return 0, fmt.Errorf("%w: got %d values, want %d", sentinel.ErrSchemaMismatch, len(values), len(l.coefficients))
	}
	z := l.intercept
	for i, x := range values {
		z += l.coefficients[i] * x
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
