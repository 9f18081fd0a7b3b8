// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package main

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shadowtrack/shadowtrack/internal/save"
)

// NewSchemaCmd creates the schema subcommand.
func NewSchemaCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Write the save file JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := save.GenerateSchema()
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(schema)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
				return oops.Code("SCHEMA_WRITE_FAILED").With("path", outPath).Wrapf(err, "create directory")
			}
			if err := os.WriteFile(outPath, schema, 0o600); err != nil {
				return oops.Code("SCHEMA_WRITE_FAILED").With("path", outPath).Wrapf(err, "write schema")
			}
			cmd.Printf("Generated %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	return cmd
}
