package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"loanrisk/internal/model"
	"loanrisk/internal/scoring"
	"loanrisk/internal/scoring/adapters"
	"loanrisk/internal/scoring/handler"
)

func (c *cli) newScoreCmd() *cobra.Command {
	var (
		age, creditScore                      int
		income, amount, employment, debtRatio float64
		includeFeatures                       bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Assess one applicant and print the result as JSON",
		Example: `  riskctl score --age 35 --income 65000 --amount 20000 \
    --credit-score 700 --employment-years 5 --debt-ratio 0.3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &handler.AssessRequest{
				Age:                 &age,
				AnnualIncome:        &income,
				RequestedLoanAmount: &amount,
				CreditScore:         &creditScore,
				EmploymentYears:     &employment,
				DebtToIncomeRatio:   &debtRatio,
				IncludeFeatures:     includeFeatures,
			}
			if err := req.Validate(); err != nil {
				return err
			}

			artifact, err := c.loadArtifact(cmd.Context())
			if err != nil {
				return err
			}

			svc := scoring.NewService(adapters.NewHandleProvider(model.NewStaticHandle(artifact)))
			result, err := svc.Assess(cmd.Context(), scoring.AssessRequest{
				Applicant:       req.Applicant(),
				IncludeFeatures: req.IncludeFeatures,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(handler.FromAssessment(result))
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&age, "age", 0, "applicant age in years")
	flags.Float64Var(&income, "income", 0, "annual income")
	flags.Float64Var(&amount, "amount", 0, "requested loan amount")
	flags.IntVar(&creditScore, "credit-score", 0, "credit score (300-850)")
	flags.Float64Var(&employment, "employment-years", 0, "years in current employment")
	flags.Float64Var(&debtRatio, "debt-ratio", 0, "debt to income ratio (0-1)")
	flags.BoolVar(&includeFeatures, "features", false, "include the mapped feature vector")
	for _, name := range []string{"age", "income", "amount", "credit-score", "employment-years", "debt-ratio"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
