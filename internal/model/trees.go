package model

import (
	"context"
	"fmt"

	"loanrisk/pkg/platform/sentinel"
)

// node is one entry of a flat tree. Internal nodes send x < threshold left.
type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	leaf      bool
	value     float64
}

type tree []node

func (t tree) eval(values []float64) float64 {
	i := 0
	for !t[i].leaf {
		n := t[i]
		if values[n.feature] < n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
	return t[i].value
}

// ensemble is either a random forest (mean of leaf probabilities) or a
// gradient-boosted model (σ of base margin plus leaf margins).
type ensemble struct {
	kind      Kind
	baseScore float64
	trees     []tree
	width     int
}

func (e *ensemble) Predict(_ context.Context, values []float64) (float64, error) {
	if len(values) != e.width {
		return 0, fmt.Errorf("%w: got %d values, want %d", sentinel.ErrSchemaMismatch, len(values), e.width)
	}
	var sum float64
	for _, t := range e.trees {
		sum += t.eval(values)
	}
	if e.kind == KindRandomForest {
		return sum / float64(len(e.trees)), nil
	}
	return sigmoid(e.baseScore + sum), nil
}

func newEnsemble(kind Kind, baseScore float64, specs []treeSpec, schema []string) (*ensemble, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: %s model has no trees", sentinel.ErrInvalidState, kind)
	}
	index := make(map[string]int, len(schema))
	for i, name := range schema {
		index[name] = i
	}

	e := &ensemble{kind: kind, baseScore: baseScore, width: len(schema)}
	for ti, spec := range specs {
		t, err := bindTree(spec, index)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", ti, err)
		}
		e.trees = append(e.trees, t)
	}
	return e, nil
}

// bindTree resolves feature names to schema positions and checks the node
// graph. Children must come after their parent, which rules out cycles.
func bindTree(spec treeSpec, index map[string]int) (tree, error) {
	if len(spec.Nodes) == 0 {
		return nil, fmt.Errorf("%w: tree has no nodes", sentinel.ErrInvalidState)
	}
	t := make(tree, len(spec.Nodes))
	for i, n := range spec.Nodes {
		if n.Leaf {
			t[i] = node{leaf: true, value: n.Value}
			continue
		}
		pos, ok := index[n.Feature]
		if !ok {
			return nil, fmt.Errorf("%w: node %d splits on unknown feature %q", sentinel.ErrInvalidState, i, n.Feature)
		}
		if n.Left <= i || n.Left >= len(spec.Nodes) || n.Right <= i || n.Right >= len(spec.Nodes) {
			return nil, fmt.Errorf("%w: node %d has child out of range (left=%d right=%d)",
				sentinel.ErrInvalidState, i, n.Left, n.Right)
		}
		t[i] = node{feature: pos, threshold: n.Threshold, left: n.Left, right: n.Right}
	}
	return t, nil
}
