package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gsdgroup/billing/internal/config"
	"github.com/gsdgroup/billing/pkg/logging"
)

// app carries what the root command resolved for its subcommands.
type app struct {
	cfg       *config.Config
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "billing-server",
		Short:        "Accounts, bills and charges over JSON HTTP.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), a.cfg)
		},
	}

	root.PersistentFlags().StringVarP(&a.logLevel, "log-level", "l", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")
	root.PersistentFlags().StringVarP(&a.logFormat, "log-format", "f", "", "log format: text or json (overrides LOG_FORMAT)")
	root.DisableAutoGenTag = true

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), a.cfg)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or upgrade the database schema and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(a.cfg)
			},
		},
	)

	return root
}

// setup loads configuration, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context(), nil)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logging.Setup(level, cfg.Log.Format)
	slog.Debug("Configuration loaded",
		"addr", cfg.Server.Addr,
		"database", cfg.Database.Path,
		"metrics", cfg.Metrics.Enabled,
	)

	a.cfg = cfg
	return nil
}
