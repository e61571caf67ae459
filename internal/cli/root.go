// Package cli provides the incomectl command-line interface.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gork-labs/incomectl/internal/config"
	"github.com/gork-labs/incomectl/internal/logging"
)

// Version is overridden at link time with -ldflags "-X".
var Version = "dev"

// rootOptions carries global flags and the state built from them before any
// subcommand runs.
type rootOptions struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *slog.Logger
}

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the incomectl command tree. Input and output go
// through the command's In/Out/Err streams so callers can redirect them.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{cfg: config.Default(), log: logging.Discard()}

	cmd := &cobra.Command{
		Use:          "incomectl",
		Short:        "Decode and describe tagged Income records",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to "+config.DefaultFile+" config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(newDecodeCommand(opts))
	cmd.AddCommand(newSchemaCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// load reads the config file and applies flags set on the command line
// over it.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.log = log.With("command", cmd.Name())
	o.log.Debug("configuration loaded",
		"config", o.configPath,
		"mode", cfg.Codec.Mode,
		"output", cfg.Output.Format)
	return nil
}
