// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package main

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/save"
	"github.com/shadowtrack/shadowtrack/pkg/errutil"
)

// NewRollCmd creates the roll subcommand.
func NewRollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "roll encounter|event <save>",
		Short:     "Roll once against a save file and write it back",
		ValidArgs: []string{"encounter", "event"},
		Args:      cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := setupLogging(cfg, cmd.ErrOrStderr())

			rng, err := newRandomSource(cfg.Seed)
			if err != nil {
				return oops.Code("SESSION_FAILED").Wrapf(err, "create dice source")
			}
			text, err := rollSave(rng, args[0], args[1])
			if err != nil {
				errutil.LogError(logger.With("path", args[1]), "roll failed", err)
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().Uint64("seed", 0, "seed the dice (0 is random)")
	return cmd
}

// rollSave makes one encounter check or ambient roll against the save at
// path, stores the result and returns the logged line.
func rollSave(rng core.RandomSource, what, path string) (string, error) {
	state, err := save.LoadSave(path)
	if err != nil {
		return "", err
	}
	session := core.NewSession(rng, core.WithState(state))

	var text string
	switch what {
	case "encounter":
		result := session.RollEncounter()
		text = result.Text
		if result.Rolled {
			text = fmt.Sprintf("Rolled %d: %s", result.Roll, result.Text)
		}
	case "event":
		event, ok := session.RollAmbientEvent()
		if !ok {
			return "", oops.Code("TABLE_EMPTY").With("table", core.TableAmbientEvents.String()).
				Errorf("ambient event table is empty")
		}
		text = event
	default:
		return "", oops.Code("INVALID_ARGS").With("roll", what).
			Errorf("unknown roll %q: want encounter or event", what)
	}

	if err := save.WriteSave(path, session.State()); err != nil {
		return "", err
	}
	return text, nil
}
