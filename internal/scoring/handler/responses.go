package handler

import (
	"time"

	"loanrisk/internal/scoring"
)

// AssessResponse is the HTTP response for POST /v1/risk/assess.
type AssessResponse struct {
	Probability    float64        `json:"probability"`
	Tier           string         `json:"tier"`
	Recommendation string         `json:"recommendation"`
	Summary        string         `json:"summary"`
	ModelVersion   string         `json:"model_version"`
	EvaluatedAt    time.Time      `json:"evaluated_at"`
	Features       []FeatureValue `json:"features,omitempty"`
}

// FeatureValue is one entry of the scored vector, in schema order.
type FeatureValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SchemaResponse is the HTTP response for GET /v1/risk/schema.
type SchemaResponse struct {
	ModelVersion string   `json:"model_version"`
	Kind         string   `json:"kind"`
	FeatureCount int      `json:"feature_count"`
	FeatureNames []string `json:"feature_names"`
}

// FromAssessment converts a domain RiskAssessment to an HTTP response.
func FromAssessment(result *scoring.RiskAssessment) *AssessResponse {
	resp := &AssessResponse{
		Probability:    result.Probability,
		Tier:           string(result.Tier),
		Recommendation: string(result.Recommendation),
		Summary:        result.Summary,
		ModelVersion:   result.ModelVersion,
		EvaluatedAt:    result.EvaluatedAt,
	}
	if result.Features != nil {
		names := result.Features.Names()
		values := result.Features.Values()
		resp.Features = make([]FeatureValue, len(names))
		for i := range names {
			resp.Features[i] = FeatureValue{Name: names[i], Value: values[i]}
		}
	}
	return resp
}

// FromSchema converts SchemaInfo to an HTTP response.
func FromSchema(info *scoring.SchemaInfo) *SchemaResponse {
	return &SchemaResponse{
		ModelVersion: info.ModelVersion,
		Kind:         info.Kind,
		FeatureCount: len(info.FeatureNames),
		FeatureNames: info.FeatureNames,
	}
}
