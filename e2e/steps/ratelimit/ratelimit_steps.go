package ratelimit

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}, headers map[string]string) error
	GetLastResponseStatus() int
	GetLastResponseHeader(key string) string
}

// RegisterSteps registers rate-limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I send (\d+) assessment requests from IP "([^"]*)"$`, steps.sendRequestsFromIP)
	ctx.Step(`^the last response should be rate limited$`, steps.lastResponseRateLimited)
	ctx.Step(`^the response should carry rate limit headers$`, steps.responseHasRateLimitHeaders)
}

type ratelimitSteps struct {
	tc TestContext
}

var validApplicant = map[string]interface{}{
	"age":                   35,
	"annual_income":         65000,
	"requested_loan_amount": 20000,
	"credit_score":          700,
	"employment_years":      5,
	"debt_to_income_ratio":  0.3,
}

// sendRequestsFromIP simulates one client behind a proxy via X-Forwarded-For.
func (s *ratelimitSteps) sendRequestsFromIP(_ context.Context, n int, ip string) error {
	headers := map[string]string{"X-Forwarded-For": ip}
	for i := 0; i < n; i++ {
		if err := s.tc.POST("/v1/risk/assess", validApplicant, headers); err != nil {
			return err
		}
		if s.tc.GetLastResponseStatus() == http.StatusTooManyRequests {
			return nil
		}
	}
	return nil
}

func (s *ratelimitSteps) lastResponseRateLimited(context.Context) error {
	if got := s.tc.GetLastResponseStatus(); got != http.StatusTooManyRequests {
		return fmt.Errorf("expected 429, got %d", got)
	}
	if s.tc.GetLastResponseHeader("Retry-After") == "" {
		return fmt.Errorf("missing Retry-After header")
	}
	return nil
}

func (s *ratelimitSteps) responseHasRateLimitHeaders(context.Context) error {
	for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
		if s.tc.GetLastResponseHeader(h) == "" {
			return fmt.Errorf("missing %s header", h)
		}
	}
	return nil
}
