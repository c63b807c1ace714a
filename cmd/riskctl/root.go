package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"loanrisk/internal/model"
	"loanrisk/internal/model/source"
	"loanrisk/internal/platform/config"
)

const envPrefix = "RISKCTL"

// cli carries the settings shared by all subcommands.
type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "riskctl",
		Short: "Inspect and exercise loan default risk models",
		Long: `riskctl loads the same classifier artifact the server serves and lets an
operator sanity-check it, list its feature schema, or score one applicant.

Settings come from flags, RISKCTL_* environment variables, or a YAML config
file, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "YAML config file")
	flags.String("model", config.DefaultModelPath, "classifier file (or set RISKCTL_MODEL)")
	flags.String("feature-names", config.DefaultFeatureNamesPath, "feature name file, JSON or YAML (or set RISKCTL_FEATURE_NAMES)")
	flags.String("classifier-url", "", "remote scoring endpoint; overrides --model (or set RISKCTL_CLASSIFIER_URL)")
	flags.String("classifier-version", config.DefaultClassifierVersion, "model version reported for the remote endpoint")
	flags.Duration("timeout", config.DefaultClassifierTimeout, "remote classifier timeout")

	for _, name := range []string{"model", "feature-names", "classifier-url", "classifier-version", "timeout"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(c.newCheckCmd(), c.newInspectCmd(), c.newScoreCmd())
	return root
}

func (c *cli) initConfig() error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if c.cfgFile == "" {
		return nil
	}
	c.v.SetConfigFile(c.cfgFile)
	c.v.SetConfigType("yaml")
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", c.cfgFile, err)
	}
	return nil
}

func (c *cli) modelConfig() config.Model {
	timeout := c.v.GetDuration("timeout")
	if timeout <= 0 {
		timeout = config.DefaultClassifierTimeout
	}
	return config.Model{
		Path:              c.v.GetString("model"),
		FeatureNamesPath:  c.v.GetString("feature-names"),
		ClassifierURL:     c.v.GetString("classifier-url"),
		ClassifierVersion: c.v.GetString("classifier-version"),
		ClassifierTimeout: timeout,
	}
}

func (c *cli) loadArtifact(ctx context.Context) (*model.Artifact, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	artifact, err := source.LoadFunc(c.modelConfig())(ctx)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return artifact, nil
}
