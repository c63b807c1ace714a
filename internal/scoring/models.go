package scoring

import (
	"time"

	"loanrisk/internal/features"
)

// Tier is the three-level risk label derived from the default probability.
type Tier string

const (
	TierLow    Tier = "LOW"
	TierMedium Tier = "MEDIUM"
	TierHigh   Tier = "HIGH"
)

// Tier boundaries. A probability equal to a boundary belongs to the higher tier.
const (
	HighRiskThreshold   = 0.8
	MediumRiskThreshold = 0.5
)

// Recommendation is the action attached to a tier.
type Recommendation string

const (
	RecommendApprove Recommendation = "approve"
	RecommendReview  Recommendation = "manual underwriting review"
	RecommendReject  Recommendation = "reject or require co-signer/collateral"
)

// AssessRequest is one applicant to score.
type AssessRequest struct {
	Applicant       features.ApplicantInput
	IncludeFeatures bool
}

// RiskAssessment is the outcome of one scoring request.
type RiskAssessment struct {
	Probability    float64
	Tier           Tier
	Recommendation Recommendation
	Summary        string
	ModelVersion   string
	EvaluatedAt    time.Time

	// Features is the vector that was scored, only set when requested.
	Features *features.FeatureVector
}

// SchemaInfo describes the loaded classifier.
type SchemaInfo struct {
	ModelVersion string
	Kind         string
	FeatureNames []string
}
