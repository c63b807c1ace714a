package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the model version, kind and feature schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			artifact, err := c.loadArtifact(cmd.Context())
			if err != nil {
				return err
			}

			info := artifact.Info()
			names := artifact.FeatureNames()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version:  %s\n", info.Version)
			fmt.Fprintf(out, "Kind:     %s\n", info.Kind)
			fmt.Fprintf(out, "Source:   %s\n", info.Source)
			fmt.Fprintf(out, "Features: %d\n", len(names))
			for i, name := range names {
				fmt.Fprintf(out, "  %2d  %s\n", i, name)
			}
			return nil
		},
	}
}
