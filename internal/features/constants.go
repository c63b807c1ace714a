package features

// CalibrationVersion identifies the frozen constants below. A model artifact
// that declares a calibration must declare this one.
const CalibrationVersion = "uci-credit-default-2005/v1"

// Population statistics of the training set, frozen at training time. They
// must never be recomputed from request data.
const (
	AgeMean = 35.48
	AgeStd  = 9.21

	LimitBalanceMean = 167484.0
	LimitBalanceStd  = 129747.0
)

// Policy thresholds for the derived signals.
const (
	YoungAgeBelow  = 25
	SeniorAgeAbove = 55

	// Credit score bands for the delay-history proxy.
	PoorCreditScoreBelow = 600
	FairCreditScoreBelow = 680

	// Trend worsening fires below both of these.
	TrendEmploymentYearsBelow = 2.0
	TrendCreditScoreBelow     = 650
)

// Delay-history proxy values per credit band.
const (
	PoorSevereDelays = 3
	PoorRecentDelay  = 2
	FairSevereDelays = 1
	FairRecentDelay  = 1
)

// Training column names the mapper knows how to fill.
const (
	NameAge                 = "AGE"
	NameIsYoung             = "IS_YOUNG"
	NameIsSenior            = "IS_SENIOR"
	NameLimitBalance        = "LIMIT_BAL"
	NamePayToBillRatio      = "PAY_TO_BILL_RATIO"
	NameTotalSevereDelays   = "TOTAL_SEVERE_DELAYS"
	NameRecentDelayStatus   = "PAY_0"
	NameDelayTrendWorsening = "DELAY_TREND_WORSENING"
)
