package scoring

import "time"

// AssignTier maps a default probability onto a tier. Pure policy, no I/O.
//
//	p >= 0.8        HIGH
//	0.5 <= p < 0.8  MEDIUM
//	p < 0.5         LOW
func AssignTier(probability float64) Tier {
	switch {
	case probability >= HighRiskThreshold:
		return TierHigh
	case probability >= MediumRiskThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// RecommendationFor returns the action for tier.
func RecommendationFor(tier Tier) Recommendation {
	switch tier {
	case TierHigh:
		return RecommendReject
	case TierMedium:
		return RecommendReview
	default:
		return RecommendApprove
	}
}

// SummaryFor returns the human-readable explanation shown with tier.
func SummaryFor(tier Tier) string {
	switch tier {
	case TierHigh:
		return "The applicant shows a very high probability of defaulting on the loan."
	case TierMedium:
		return "The applicant shows some concerning financial indicators."
	default:
		return "The applicant shows healthy financial indicators."
	}
}

// BuildAssessment assembles the result for a scored probability.
func BuildAssessment(probability float64, modelVersion string, evaluatedAt time.Time) *RiskAssessment {
	tier := AssignTier(probability)
	return &RiskAssessment{
		Probability:    probability,
		Tier:           tier,
		Recommendation: RecommendationFor(tier),
		Summary:        SummaryFor(tier),
		ModelVersion:   modelVersion,
		EvaluatedAt:    evaluatedAt,
	}
}
