package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssignTier(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		want        Tier
	}{
		{name: "zero", probability: 0, want: TierLow},
		{name: "typical low", probability: 0.42, want: TierLow},
		{name: "just below medium", probability: 0.4999, want: TierLow},
		{name: "medium boundary is inclusive", probability: 0.5, want: TierMedium},
		{name: "typical medium", probability: 0.65, want: TierMedium},
		{name: "just below high", probability: 0.7999, want: TierMedium},
		{name: "high boundary is inclusive", probability: 0.8, want: TierHigh},
		{name: "certain default", probability: 1, want: TierHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignTier(tt.probability))
		})
	}
}

func TestAssignTier_Monotonic(t *testing.T) {
	rank := map[Tier]int{TierLow: 0, TierMedium: 1, TierHigh: 2}
	prev := AssignTier(0)
	for i := 1; i <= 1000; i++ {
		cur := AssignTier(float64(i) / 1000)
		assert.GreaterOrEqual(t, rank[cur], rank[prev], "tier decreased at p=%v", float64(i)/1000)
		prev = cur
	}
}

func TestRecommendationFor(t *testing.T) {
	assert.Equal(t, RecommendApprove, RecommendationFor(TierLow))
	assert.Equal(t, RecommendReview, RecommendationFor(TierMedium))
	assert.Equal(t, RecommendReject, RecommendationFor(TierHigh))
}

func TestBuildAssessment(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	result := BuildAssessment(0.83, "v7", at)

	assert.Equal(t, 0.83, result.Probability)
	assert.Equal(t, TierHigh, result.Tier)
	assert.Equal(t, RecommendReject, result.Recommendation)
	assert.Contains(t, result.Summary, "very high probability")
	assert.Equal(t, "v7", result.ModelVersion)
	assert.Equal(t, at, result.EvaluatedAt)
	assert.Nil(t, result.Features)
}
