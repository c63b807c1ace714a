// Package source picks where the classifier artifact comes from: the local
// files written by the training job, or a remote scoring endpoint.
package source

import (
	"context"
	"fmt"

	"loanrisk/internal/model"
	"loanrisk/internal/model/remote"
	"loanrisk/internal/platform/config"
)

// LoadFunc returns the loader matching cfg. A configured ClassifierURL wins
// over the local model file; the feature-name file is read either way.
func LoadFunc(cfg config.Model) model.LoadFunc {
	if cfg.ClassifierURL == "" {
		return func(ctx context.Context) (*model.Artifact, error) {
			return model.Load(ctx, model.Paths{
				Model:        cfg.Path,
				FeatureNames: cfg.FeatureNamesPath,
			})
		}
	}
	return func(context.Context) (*model.Artifact, error) {
		schema, err := model.LoadSchema(cfg.FeatureNamesPath)
		if err != nil {
			return nil, fmt.Errorf("feature names %s: %w", cfg.FeatureNamesPath, err)
		}
		return remote.NewArtifact(cfg.ClassifierURL, cfg.ClassifierVersion, schema,
			remote.WithTimeout(cfg.ClassifierTimeout))
	}
}
