package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loanrisk/internal/features"
)

// decisionThreshold is the classifier's own decision boundary, distinct from
// the risk tier boundaries.
const decisionThreshold = 0.5

func (c *cli) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the model and score an all-zero feature vector",
		Long: `check loads the artifact and scores a vector of zeros. Features are
standardized, so this is a perfectly average applicant; a sane model returns
a probability well inside (0, 1).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			artifact, err := c.loadArtifact(cmd.Context())
			if err != nil {
				return err
			}

			p, err := artifact.Score(cmd.Context(), features.NewVector(artifact.FeatureNames()))
			if err != nil {
				return fmt.Errorf("score zero vector: %w", err)
			}

			prediction := "No Default"
			if p >= decisionThreshold {
				prediction = "Default"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Model: %s (%s)\n", artifact.Version(), artifact.Kind())
			fmt.Fprintf(out, "Prediction: %s\n", prediction)
			fmt.Fprintf(out, "Probability of default: %.4f\n", p)
			return nil
		},
	}
}
