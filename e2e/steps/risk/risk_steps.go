package risk

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}, headers map[string]string) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
}

// RegisterSteps registers risk assessment step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &riskSteps{tc: tc}

	ctx.Step(`^an applicant aged (\d+) earning (\d+) requesting (\d+)$`, steps.givenApplicant)
	ctx.Step(`^the applicant has credit score (\d+), (\d+) years employed and debt ratio ([\d.]+)$`, steps.applicantCredit)
	ctx.Step(`^the applicant omits "([^"]*)"$`, steps.applicantOmits)
	ctx.Step(`^I request a risk assessment$`, steps.requestAssessment)
	ctx.Step(`^I request a risk assessment with features$`, steps.requestAssessmentWithFeatures)
	ctx.Step(`^I request the model schema$`, steps.requestSchema)
	ctx.Step(`^the probability should be between ([\d.]+) and ([\d.]+)$`, steps.probabilityBetween)
	ctx.Step(`^the response should list (\d+) features$`, steps.responseListsFeatures)
}

type riskSteps struct {
	tc        TestContext
	applicant map[string]interface{}
}

func (s *riskSteps) givenApplicant(_ context.Context, age, income, amount int) error {
	s.applicant = map[string]interface{}{
		"age":                   age,
		"annual_income":         income,
		"requested_loan_amount": amount,
	}
	return nil
}

func (s *riskSteps) applicantCredit(_ context.Context, creditScore, years int, debtRatio float64) error {
	if s.applicant == nil {
		return fmt.Errorf("no applicant defined")
	}
	s.applicant["credit_score"] = creditScore
	s.applicant["employment_years"] = years
	s.applicant["debt_to_income_ratio"] = debtRatio
	return nil
}

func (s *riskSteps) applicantOmits(_ context.Context, field string) error {
	delete(s.applicant, field)
	return nil
}

func (s *riskSteps) requestAssessment(context.Context) error {
	return s.tc.POST("/v1/risk/assess", s.applicant, nil)
}

func (s *riskSteps) requestAssessmentWithFeatures(context.Context) error {
	body := make(map[string]interface{}, len(s.applicant)+1)
	for k, v := range s.applicant {
		body[k] = v
	}
	body["include_features"] = true
	return s.tc.POST("/v1/risk/assess", body, nil)
}

func (s *riskSteps) requestSchema(context.Context) error {
	return s.tc.GET("/v1/risk/schema", nil)
}

func (s *riskSteps) probabilityBetween(_ context.Context, lo, hi float64) error {
	v, err := s.tc.GetResponseField("probability")
	if err != nil {
		return err
	}
	p, ok := v.(float64)
	if !ok {
		return fmt.Errorf("probability is %T, not a number", v)
	}
	if p < lo || p > hi {
		return fmt.Errorf("probability %v outside [%v, %v]", p, lo, hi)
	}
	return nil
}

func (s *riskSteps) responseListsFeatures(_ context.Context, n int) error {
	v, err := s.tc.GetResponseField("features")
	if err != nil {
		v, err = s.tc.GetResponseField("feature_names")
		if err != nil {
			return err
		}
	}
	list, ok := v.([]interface{})
	if !ok {
		return fmt.Errorf("features is %T, not a list", v)
	}
	if len(list) != n {
		return fmt.Errorf("expected %d features, got %d", n, len(list))
	}
	return nil
}
