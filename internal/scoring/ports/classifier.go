package ports

import (
	"context"

	"loanrisk/internal/features"
)

// Classifier is the loaded scoring oracle: an ordered feature schema in, a
// default probability out. Implementations are read-only and safe for
// concurrent use.
type Classifier interface {
	Version() string
	Kind() string

	// FeatureNames returns the schema in training order.
	FeatureNames() []string

	// Score fails with sentinel.ErrSchemaMismatch when the vector does not
	// carry exactly FeatureNames.
	Score(ctx context.Context, vec features.FeatureVector) (float64, error)
}

// ArtifactProvider hands out the process-wide classifier. A load failure is
// reported on every call.
type ArtifactProvider interface {
	Classifier(ctx context.Context) (Classifier, error)
}
