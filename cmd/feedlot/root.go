package main

import (
	"fmt"

	"github.com/confinamento/feedlot-engine/internal/config"
	"github.com/confinamento/feedlot-engine/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// cli holds state shared by every subcommand once the root pre-run has loaded settings.
type cli struct {
	v          *viper.Viper
	configFile string
	settings   *config.Settings
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "feedlot",
		Short:         "Feedlot economics: weight projection, costs, DRE and rate-card pricing",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "settings file (default feedlot.yaml in . or ./config)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "json", "log format: json or console")
	pf.String("db-url", "", "PostgreSQL URL for the pricing matrix (empty uses an in-memory store)")
	pf.Bool("strict", false, "reject ambiguous pricing matches instead of using the first row")
	pf.String("matrix", "", "rate-card YAML used to seed the in-memory store")

	for key, flag := range map[string]string{
		"log.level":        "log-level",
		"log.format":       "log-format",
		"db.url":           "db-url",
		"matrix.strict":    "strict",
		"matrix.seed_file": "matrix",
	} {
		if err := c.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newSimulateCmd(c),
		newSensitivityCmd(c),
		newMatrixCmd(c),
		newServeCmd(c),
		newExampleCmd(c),
	)
	return root
}

func (c *cli) load() error {
	if c.configFile != "" {
		c.v.SetConfigFile(c.configFile)
	}
	s, err := config.LoadSettings(c.v)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	l, err := logger.New(s.Log.Level, s.Log.Format)
	if err != nil {
		return err
	}
	c.settings = s
	c.logger = l
	return nil
}
