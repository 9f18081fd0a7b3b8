// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shadowtrack/shadowtrack/internal/config"
	"github.com/shadowtrack/shadowtrack/internal/logging"
)

const serviceName = "shadowtrack"

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Shadowtrack CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shadowtrack",
		Short: "Shadowtrack - a dungeon turn and light tracker",
		Long: `Shadowtrack keeps the game clock for a tabletop dungeon crawl. Every
ten game minutes it burns down light sources, rolls an ambient event and
checks for a wandering encounter.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (json or text)")
	cmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewRollCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

// loadConfig reads the config file named by --config and applies the flags
// the user set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configFile, cmd.Flags())
}

// setupLogging installs the default logger writing to w.
func setupLogging(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.SetDefault(serviceName, version, cfg.LogFormat, cfg.LogLevel, w)
}
