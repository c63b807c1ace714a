package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"loanrisk/pkg/platform/sentinel"
)

// Paths locates the two files written by the training job.
type Paths struct {
	Model        string
	FeatureNames string
}

// classifierSpec is the on-disk classifier format.
type classifierSpec struct {
	Version      string     `json:"version"`
	Kind         Kind       `json:"kind"`
	Calibration  string     `json:"calibration,omitempty"`
	Intercept    float64    `json:"intercept"`
	Coefficients []float64  `json:"coefficients,omitempty"`
	BaseScore    float64    `json:"base_score"`
	Trees        []treeSpec `json:"trees,omitempty"`
}

type treeSpec struct {
	Nodes []nodeSpec `json:"nodes"`
}

type nodeSpec struct {
	Feature   string  `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"value,omitempty"`
}

// Load reads the schema and classifier files concurrently and binds them.
func Load(ctx context.Context, paths Paths) (*Artifact, error) {
	var schemaData, modelData []byte

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := readArtifactFile("feature names", paths.FeatureNames)
		schemaData = data
		return err
	})
	g.Go(func() error {
		data, err := readArtifactFile("model", paths.Model)
		modelData = data
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	schema, err := ParseSchema(schemaData)
	if err != nil {
		return nil, fmt.Errorf("feature names %s: %w", paths.FeatureNames, err)
	}
	artifact, err := ParseClassifier(modelData, schema)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", paths.Model, err)
	}
	artifact.info.Source = paths.Model
	return artifact, nil
}

// LoadSchema reads and validates a feature-name file on its own.
func LoadSchema(path string) ([]string, error) {
	data, err := readArtifactFile("feature names", path)
	if err != nil {
		return nil, err
	}
	schema, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("feature names %s: %w", path, err)
	}
	return schema, nil
}

// ParseSchema decodes an ordered list of feature names. YAML and JSON are
// both accepted.
func ParseSchema(data []byte) ([]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: feature schema is empty", sentinel.ErrInvalidState)
	}
	var schema []string
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("%w: decode feature names: %v", sentinel.ErrInvalidState, err)
	}
	if err := ValidateSchema(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// ParseClassifier decodes a classifier file and binds it to schema.
func ParseClassifier(data []byte, schema []string) (*Artifact, error) {
	var spec classifierSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: decode classifier: %v", sentinel.ErrInvalidState, err)
	}
	if spec.Version == "" {
		return nil, fmt.Errorf("%w: classifier version is required", sentinel.ErrInvalidState)
	}
	if err := ValidateSchema(schema); err != nil {
		return nil, err
	}

	var scorer Scorer
	switch spec.Kind {
	case KindLogistic:
		l, err := newLogistic(spec.Intercept, spec.Coefficients, schema)
		if err != nil {
			return nil, err
		}
		scorer = l
	case KindRandomForest, KindGradientBoosting:
		e, err := newEnsemble(spec.Kind, spec.BaseScore, spec.Trees, schema)
		if err != nil {
			return nil, err
		}
		scorer = e
	default:
		return nil, fmt.Errorf("%w: unsupported classifier kind %q", sentinel.ErrInvalidState, spec.Kind)
	}

	return NewArtifact(Info{
		Version:     spec.Version,
		Kind:        spec.Kind,
		Calibration: spec.Calibration,
	}, schema, scorer)
}

func readArtifactFile(what, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: %s path is not configured", sentinel.ErrNotFound, what)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s file %s", sentinel.ErrNotFound, what, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s file %s: %w", what, path, err)
	}
	return data, nil
}
