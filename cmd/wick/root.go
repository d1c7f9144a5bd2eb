package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sbl8/wick/config"
	"github.com/sbl8/wick/internal/logger"
	"github.com/sbl8/wick/internal/telemetry"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	trace      bool
	logLevel   string
}

// app is the per-invocation state built from the config file and flags.
type app struct {
	cfg config.Config
	log *zap.Logger

	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "wick",
		Short: "Normal-order fermionic operator strings with Wick's theorem",
		Long: `wick compiles programs of second-quantized operator strings and
expands each term into normal-ordered form, or into its vacuum
expectation value with --full.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.BoolVar(&opts.trace, "trace", false, "export OpenTelemetry spans and metrics to stderr")
	flags.StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(
		newRunCmd(opts),
		newCheckCmd(opts),
		newShowCmd(opts),
		newPerfCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the config and builds the logger. Telemetry is installed when
// --trace is given or the config enables it. Callers must defer close.
func (o *rootOptions) setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}
	if o.trace || cfg.Telemetry.Enabled {
		a.shutdown, err = telemetry.Init(cmd.Context(), telemetry.Config{
			ServiceName:    cfg.Telemetry.Service,
			ServiceVersion: version,
			Writer:         cmd.ErrOrStderr(),
		})
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			a.log.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
