// Package features translates the six attributes collected from a loan
// applicant into the standardized feature vector the trained classifier
// expects.
//
// The classifier was trained on the ~30 standardized columns of the UCI
// credit card default dataset, while the form collects six intuitive values.
// The rules here are a documented, lossy approximation bridging the two; they
// are policy, not a statistical fit, and must keep their thresholds and
// frozen constants to stay compatible with an existing trained model.
package features

// ApplicantInput is what the caller collects. Ranges are enforced by the
// caller: age 18-100, credit score 300-850, employment years >= 0 and
// debt-to-income ratio 0-1. Mapping is total outside those ranges but tier
// correctness is only meaningful inside them.
type ApplicantInput struct {
	Age                 int
	AnnualIncome        float64 // collected but not used by any rule yet
	RequestedLoanAmount float64
	CreditScore         int
	EmploymentYears     float64
	DebtToIncomeRatio   float64
}

// Map builds the feature vector for input against schema. Every schema name
// is present and defaults to 0.0; a rule only fills its feature when the
// schema contains it.
func Map(input ApplicantInput, schema []string) FeatureVector {
	v := NewVector(schema)

	v.set(NameAge, StandardizeAge(float64(input.Age)))
	v.set(NameIsYoung, indicator(input.Age < YoungAgeBelow))
	v.set(NameIsSenior, indicator(input.Age > SeniorAgeAbove))

	v.set(NameLimitBalance, StandardizeLimitBalance(input.RequestedLoanAmount))

	// High debt ratio stands in for high credit utilization.
	v.set(NamePayToBillRatio, input.DebtToIncomeRatio)

	severe, recent := DelayHistory(input.CreditScore)
	v.set(NameTotalSevereDelays, float64(severe))
	v.set(NameRecentDelayStatus, float64(recent))

	v.set(NameDelayTrendWorsening, indicator(
		input.EmploymentYears < TrendEmploymentYearsBelow && input.CreditScore < TrendCreditScoreBelow,
	))

	return v
}

// StandardizeAge applies the frozen training-set age statistics.
func StandardizeAge(age float64) float64 {
	return (age - AgeMean) / AgeStd
}

// StandardizeLimitBalance maps a requested amount onto the standardized
// LIMIT_BAL scale of the training set.
func StandardizeLimitBalance(amount float64) float64 {
	return (amount - LimitBalanceMean) / LimitBalanceStd
}

// DelayHistory derives the severe-delay count and the most recent repayment
// status (months late) from a credit score.
func DelayHistory(creditScore int) (severeDelays, recentDelayStatus int) {
	switch {
	case creditScore < PoorCreditScoreBelow:
		return PoorSevereDelays, PoorRecentDelay
	case creditScore < FairCreditScoreBelow:
		return FairSevereDelays, FairRecentDelay
	default:
		return 0, 0
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
