package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"pantry-ci/src/broker"
	"pantry-ci/src/cellar"
	"pantry-ci/src/config"
	"pantry-ci/src/contracts"
	"pantry-ci/src/logger"
	"pantry-ci/src/platform"
)

const defaultPublishTimeout = 15 * time.Second

// app carries the process dependencies so commands can run against test doubles.
type app struct {
	stdout io.Writer
	stderr io.Writer

	loadConfig func() (*config.Config, error)
	openCellar func(cfg *config.Config) (cellar.Cellar, func() error, error)
	openBroker func(cfg *config.Config) (broker.Broker, error)
	log        logger.Logger
	now        func() time.Time

	// openRecorder is used by "cellar record"; it needs CELLAR_DSN.
	openRecorder func(cfg *config.Config) (recorder, func() error, error)

	// publishTimeout bounds a single event publish; zero means defaultPublishTimeout.
	publishTimeout time.Duration

	cfg        *config.Config
	configFile string
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pantry-ci",
		Short: "pantry-ci - CI helpers for building pantry packages",
		Long: `pantry-ci computes the inputs of a package build pipeline.

  filter     print the packages that are (not) installed in the cellar
  platform   print the job-matrix parameters for $PLATFORM
  mcp        serve both operations as MCP tools over stdio
  cellar     record installations in the shared Postgres cellar

Configuration comes from the environment (INVERT, PLATFORM, GITHUB_ACTIONS,
GITHUB_OUTPUT, TEA_PREFIX, CELLAR_DSN, REDPANDA_BROKERS, PANTRY_CONFIG) and a
.env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			if a.configFile != "" {
				cfg.OverridesFile = a.configFile
			}
			a.cfg = cfg
			return nil
		},
	}

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "TOML file with platform table overrides (default $PANTRY_CONFIG)")

	root.AddCommand(a.filterCmd())
	root.AddCommand(a.platformCmd())
	root.AddCommand(a.platformsCmd())
	root.AddCommand(a.mcpCmd())
	root.AddCommand(a.cellarCmd())

	return root
}

// table returns the built-in platform table with any configured overrides.
func (a *app) table() (*platform.Table, error) {
	table := platform.DefaultTable()
	if a.cfg.OverridesFile == "" {
		return table, nil
	}

	o, err := platform.LoadOverrides(a.cfg.OverridesFile)
	if err != nil {
		return nil, err
	}
	a.log.Debug("loaded platform overrides from %s", a.cfg.OverridesFile)
	return table.Apply(o)
}

func (a *app) runInfo() contracts.RunInfo {
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	return contracts.RunInfo{
		RunID:      a.cfg.RunID,
		Repository: a.cfg.Repository,
		Timestamp:  now().UTC().Format(time.RFC3339),
	}
}

// publish sends event when a broker is configured. It runs before any output
// is written so a failure leaves stdout and $GITHUB_OUTPUT untouched.
func (a *app) publish(cmd *cobra.Command, topic, key string, event any) error {
	b, err := a.openBroker(a.cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	if b == nil {
		return nil
	}
	defer b.Close()

	timeout := a.publishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := broker.PublishJSON(ctx, b, topic, key, event); err != nil {
		a.log.Error("publish to %s failed: %v", topic, err)
		return err
	}
	a.log.Info("published %s event", topic)
	return nil
}

func openCellar(cfg *config.Config) (cellar.Cellar, func() error, error) {
	if cfg.CellarDSN != "" {
		c, err := cellar.NewPostgresCellar(cfg.CellarDSN)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	}

	c, err := cellar.NewFSCellar(cfg.TeaPrefix)
	if err != nil {
		return nil, nil, err
	}
	return c, func() error { return nil }, nil
}

// describeCellar names the cellar for log messages.
func describeCellar(c cellar.Cellar) string {
	switch c := c.(type) {
	case *cellar.FSCellar:
		return "cellar " + c.Prefix()
	case *cellar.PostgresCellar:
		return "postgres cellar"
	default:
		return fmt.Sprintf("%T", c)
	}
}

func openBroker(cfg *config.Config) (broker.Broker, error) {
	if len(cfg.RedpandaBrokers) == 0 {
		return nil, nil
	}
	b, err := broker.NewRedpandaBroker(cfg.RedpandaBrokers)
	if err != nil {
		return nil, err
	}
	return b, nil
}
