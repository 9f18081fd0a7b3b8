// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package main

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shadowtrack/shadowtrack/internal/store"
	"github.com/shadowtrack/shadowtrack/internal/xdg"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the turn archive schema",
		Long: `Apply pending turn archive migrations. The archive is migrated
automatically when a session opens it; this command is for inspecting
and repairing it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				cmd.Println("Migrations completed successfully")
				return nil
			})
		},
	}
	cmd.PersistentFlags().String("archive", "", "turn archive database (default $XDG_DATA_HOME/shadowtrack/archive.db)")

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				return printMigrationStatus(cmd, m)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration, dropping archived turns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				cmd.Println("All migrations rolled back")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "force <version>",
		Short: "Mark a version as applied without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseForceVersion(args[0])
			if err != nil {
				return err
			}
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Force(version); err != nil {
					return err
				}
				cmd.Printf("Forced version %d\n", version)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(*store.Migrator) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.Archive
	if path == "" {
		path = xdg.ArchiveFile()
	}
	if err := xdg.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	m, err := store.OpenMigrator(path)
	if err != nil {
		return err
	}
	runErr := fn(m)
	closeErr := m.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func printMigrationStatus(cmd *cobra.Command, m *store.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	name, err := store.MigrationName(version)
	if err != nil {
		return err
	}
	if name == "" {
		name = "none"
	}
	cmd.Printf("Current version: %d (%s)\n", version, name)
	if dirty {
		cmd.Println("WARNING: database is dirty; fix it and run 'migrate force <version>'")
	}

	pending, err := m.PendingMigrations()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		cmd.Println("Up to date")
		return nil
	}
	cmd.Println("Pending:")
	for _, v := range pending {
		pendingName, err := store.MigrationName(v)
		if err != nil {
			return err
		}
		cmd.Printf("  %s\n", pendingName)
	}
	return nil
}

// parseForceVersion parses the version argument of migrate force.
func parseForceVersion(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, oops.Code("INVALID_VERSION").Errorf("version is required")
	}
	version, err := strconv.Atoi(s)
	if err != nil {
		return 0, oops.Code("INVALID_VERSION").With("version", s).Errorf("version must be an integer, got %q", s)
	}
	return version, nil
}
