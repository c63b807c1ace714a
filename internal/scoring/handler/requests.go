package handler

import (
	"fmt"

	"loanrisk/internal/features"
	dErrors "loanrisk/pkg/domain-errors"
)

// Accepted input ranges. The mapper is total outside them but tiers are only
// meaningful inside.
const (
	minAge         = 18
	maxAge         = 100
	minCreditScore = 300
	maxCreditScore = 850
)

// AssessRequest is the HTTP request body for POST /v1/risk/assess.
// Pointers distinguish a missing field from an explicit zero.
type AssessRequest struct {
	Age                 *int     `json:"age"`
	AnnualIncome        *float64 `json:"annual_income"`
	RequestedLoanAmount *float64 `json:"requested_loan_amount"`
	CreditScore         *int     `json:"credit_score"`
	EmploymentYears     *float64 `json:"employment_years"`
	DebtToIncomeRatio   *float64 `json:"debt_to_income_ratio"`
	IncludeFeatures     bool     `json:"include_features"`
}

// Validate checks presence and ranges.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *AssessRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Required fields
	switch {
	case r.Age == nil:
		return required("age")
	case r.AnnualIncome == nil:
		return required("annual_income")
	case r.RequestedLoanAmount == nil:
		return required("requested_loan_amount")
	case r.CreditScore == nil:
		return required("credit_score")
	case r.EmploymentYears == nil:
		return required("employment_years")
	case r.DebtToIncomeRatio == nil:
		return required("debt_to_income_ratio")
	}

	// Ranges
	if *r.Age < minAge || *r.Age > maxAge {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("age must be between %d and %d", minAge, maxAge))
	}
	if *r.AnnualIncome <= 0 {
		return dErrors.New(dErrors.CodeValidation, "annual_income must be greater than 0")
	}
	if *r.RequestedLoanAmount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "requested_loan_amount must be greater than 0")
	}
	if *r.CreditScore < minCreditScore || *r.CreditScore > maxCreditScore {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("credit_score must be between %d and %d", minCreditScore, maxCreditScore))
	}
	if *r.EmploymentYears < 0 {
		return dErrors.New(dErrors.CodeValidation, "employment_years must not be negative")
	}
	if *r.DebtToIncomeRatio < 0 || *r.DebtToIncomeRatio > 1 {
		return dErrors.New(dErrors.CodeValidation, "debt_to_income_ratio must be between 0 and 1")
	}
	return nil
}

// Applicant returns the validated input. Call only after Validate succeeded.
func (r *AssessRequest) Applicant() features.ApplicantInput {
	return features.ApplicantInput{
		Age:                 *r.Age,
		AnnualIncome:        *r.AnnualIncome,
		RequestedLoanAmount: *r.RequestedLoanAmount,
		CreditScore:         *r.CreditScore,
		EmploymentYears:     *r.EmploymentYears,
		DebtToIncomeRatio:   *r.DebtToIncomeRatio,
	}
}

func required(field string) error {
	return dErrors.New(dErrors.CodeValidation, field+" is required")
}
