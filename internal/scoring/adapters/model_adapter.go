package adapters

import (
	"context"

	"loanrisk/internal/model"
	"loanrisk/internal/scoring/ports"
)

// HandleProvider implements ports.ArtifactProvider on top of the lazily
// loaded model handle.
type HandleProvider struct {
	handle *model.Handle
}

// NewHandleProvider creates a provider backed by handle.
func NewHandleProvider(handle *model.Handle) ports.ArtifactProvider {
	return &HandleProvider{handle: handle}
}

// Classifier returns the loaded artifact or the cached load error.
func (p *HandleProvider) Classifier(ctx context.Context) (ports.Classifier, error) {
	artifact, err := p.handle.Get(ctx)
	if err != nil {
		return nil, err
	}
	return artifactClassifier{artifact}, nil
}

type artifactClassifier struct {
	*model.Artifact
}

func (a artifactClassifier) Kind() string {
	return string(a.Artifact.Kind())
}
