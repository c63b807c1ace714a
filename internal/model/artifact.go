// Package model loads and evaluates the trained default-risk classifier.
//
// An artifact is two files produced by the offline training job: an ordered
// feature-name schema and a serialized classifier. Once loaded an Artifact is
// immutable and safe for concurrent scoring without locks.
package model

import (
	"context"
	"fmt"

	"loanrisk/internal/features"
	"loanrisk/pkg/platform/sentinel"
	pstrings "loanrisk/pkg/platform/strings"
)

// Kind identifies the classifier family.
type Kind string

const (
	KindLogistic         Kind = "logistic"
	KindRandomForest     Kind = "random_forest"
	KindGradientBoosting Kind = "gradient_boosting"
	KindRemote           Kind = "remote"
)

// Scorer turns schema-ordered feature values into a default probability.
type Scorer interface {
	Predict(ctx context.Context, values []float64) (float64, error)
}

// Info describes where an artifact came from.
type Info struct {
	Version     string
	Kind        Kind
	Calibration string
	Source      string
}

// Artifact is a loaded classifier bound to its feature schema.
type Artifact struct {
	info   Info
	schema []string
	scorer Scorer
}

// NewArtifact validates schema and binds it to scorer.
func NewArtifact(info Info, schema []string, scorer Scorer) (*Artifact, error) {
	if err := ValidateSchema(schema); err != nil {
		return nil, err
	}
	if scorer == nil {
		return nil, fmt.Errorf("%w: scorer is required", sentinel.ErrInvalidState)
	}
	if info.Calibration != "" && info.Calibration != features.CalibrationVersion {
		return nil, fmt.Errorf("%w: artifact calibration %q does not match mapper calibration %q",
			sentinel.ErrInvalidState, info.Calibration, features.CalibrationVersion)
	}
	return &Artifact{
		info:   info,
		schema: append([]string(nil), schema...),
		scorer: scorer,
	}, nil
}

// ValidateSchema rejects empty schemas, blank names and duplicates.
func ValidateSchema(schema []string) error {
	if len(schema) == 0 {
		return fmt.Errorf("%w: feature schema is empty", sentinel.ErrInvalidState)
	}
	if i := pstrings.FirstBlank(schema); i >= 0 {
		return fmt.Errorf("%w: feature name at position %d is blank", sentinel.ErrInvalidState, i)
	}
	if dupes := pstrings.Duplicates(schema); len(dupes) > 0 {
		return fmt.Errorf("%w: duplicate feature names %v", sentinel.ErrInvalidState, dupes)
	}
	return nil
}

func (a *Artifact) Version() string { return a.info.Version }

func (a *Artifact) Kind() Kind { return a.info.Kind }

func (a *Artifact) Info() Info { return a.info }

// FeatureNames returns a copy of the schema in training order.
func (a *Artifact) FeatureNames() []string {
	return append([]string(nil), a.schema...)
}

// Score returns the probability of default for vec. The vector must carry
// exactly the artifact's schema, in order.
func (a *Artifact) Score(ctx context.Context, vec features.FeatureVector) (float64, error) {
	if !vec.MatchesSchema(a.schema) {
		return 0, fmt.Errorf("%w: vector has %d features, model %s expects %d in training order",
			sentinel.ErrSchemaMismatch, vec.Len(), a.info.Version, len(a.schema))
	}
	return a.scorer.Predict(ctx, vec.Values())
}
