package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureVector(t *testing.T) {
	v := NewVector([]string{"A", "B", "C"})
	v.set("B", 2.5)
	v.set("Z", 9)

	assert.Equal(t, []float64{0, 2.5, 0}, v.Values())
	assert.Equal(t, map[string]float64{"A": 0, "B": 2.5, "C": 0}, v.Map())

	got, ok := v.Get("B")
	assert.True(t, ok)
	assert.Equal(t, 2.5, got)

	_, ok = v.Get("Z")
	assert.False(t, ok)

	values := v.Values()
	values[0] = 42
	got, _ = v.Get("A")
	assert.Zero(t, got, "Values returns a copy")

	assert.True(t, v.MatchesSchema([]string{"A", "B", "C"}))
	assert.False(t, v.MatchesSchema([]string{"A", "C", "B"}), "order matters")
	assert.False(t, v.MatchesSchema([]string{"A", "B"}), "count matters")
}
