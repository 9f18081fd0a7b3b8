// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/save"
)

// NewShowCmd creates the show subcommand.
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <save>",
		Short: "Print the clock, lights and log of a save file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := save.LoadSave(args[0])
			if err != nil {
				return err
			}
			writeState(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

func writeState(w io.Writer, state *core.GameState) {
	_, _ = fmt.Fprintf(w, "Game Time: %s\n", core.FormatClock(state.ClockElapsed))
	_, _ = fmt.Fprintf(w, "Turn: %d\n", state.Turn)
	if state.NextTriggerMinutes != nil {
		_, _ = fmt.Fprintf(w, "Next turn at: %d min\n", *state.NextTriggerMinutes)
	}
	if state.EncounterRoll != nil {
		_, _ = fmt.Fprintf(w, "Last encounter roll: %d\n", *state.EncounterRoll)
	}

	_, _ = fmt.Fprintln(w, "\nLight Sources:")
	if len(state.LightSources) == 0 {
		_, _ = fmt.Fprintln(w, "  (none)")
	}
	for i, l := range state.LightSources {
		_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, l.Describe())
	}

	_, _ = fmt.Fprintln(w, "\nEvent Log:")
	if len(state.EventLog) == 0 {
		_, _ = fmt.Fprintln(w, "  (empty)")
	}
	for _, entry := range core.NewestFirst(state.EventLog) {
		_, _ = fmt.Fprintf(w, "  Turn %d:\n", entry.Turn)
		for _, e := range entry.Events {
			_, _ = fmt.Fprintf(w, "    %s\n", e)
		}
	}
}
