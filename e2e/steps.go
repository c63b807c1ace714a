package e2e

import (
	"github.com/cucumber/godog"

	"loanrisk/e2e/steps/common"
	"loanrisk/e2e/steps/ratelimit"
	"loanrisk/e2e/steps/risk"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (service availability, generic assertions)
	common.RegisterSteps(ctx, tc)

	// Register risk assessment steps
	risk.RegisterSteps(ctx, tc)

	// Register rate limiting steps
	ratelimit.RegisterSteps(ctx, tc)
}
