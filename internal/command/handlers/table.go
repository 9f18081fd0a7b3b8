// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package handlers

import (
	"context"
	"strings"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/core"
)

// EncounterHandler edits the encounter table and makes manual checks.
func EncounterHandler(ctx context.Context, exec *command.CommandExecution) error {
	sub, _ := splitFirst(exec.Args)
	s := exec.Services.Session
	switch sub {
	case "roll":
		writeOutput(ctx, exec, "encounter", s.RollEncounter().Text)
		return nil
	case "force":
		writeOutput(ctx, exec, "encounter", s.ForceEncounter().Text)
		return nil
	}
	return editTable(ctx, exec, "encounter", core.TableEncounters,
		"encounter [add <text>|rm <n>|set <n> <text>|roll|force]")
}

// EventHandler edits the ambient event table and rolls events.
func EventHandler(ctx context.Context, exec *command.CommandExecution) error {
	sub, _ := splitFirst(exec.Args)
	if sub == "roll" {
		event, ok := exec.Services.Session.RollAmbientEvent()
		if !ok {
			writeOutput(ctx, exec, "event", "Ambient event table is empty.")
			return nil
		}
		writeOutput(ctx, exec, "event", event)
		return nil
	}
	return editTable(ctx, exec, "event", core.TableAmbientEvents,
		"event [add <text>|rm <n>|set <n> <text>|roll]")
}

func editTable(ctx context.Context, exec *command.CommandExecution, name string, t core.Table, usage string) error {
	s := exec.Services.Session
	sub, rest := splitFirst(exec.Args)

	switch sub {
	case "", "list":
		entries := s.Entries(t)
		if len(entries) == 0 {
			writeOutputf(ctx, exec, name, "The %s table is empty.\n", t)
			return nil
		}
		for i, e := range entries {
			writeOutputf(ctx, exec, name, "%d. %s\n", i+1, e)
		}
		return nil

	case "add":
		if rest == "" {
			return command.ErrInvalidArgs(name, usage)
		}
		if err := s.AddEntry(t, rest); err != nil {
			return err
		}
		writeOutputf(ctx, exec, name, "Added %q as entry %d.\n", rest, len(s.Entries(t)))
		return nil

	case "rm", "remove":
		idx, err := parsePosition(rest)
		if err != nil {
			return err
		}
		if err := s.RemoveEntry(t, idx); err != nil {
			return err
		}
		writeOutputf(ctx, exec, name, "Removed entry %d.\n", idx+1)
		return nil

	case "set":
		pos, text := splitFirst(rest)
		text = strings.TrimSpace(text)
		if text == "" {
			return command.ErrInvalidArgs(name, usage)
		}
		idx, err := parsePosition(pos)
		if err != nil {
			return err
		}
		if err := s.SetEntry(t, idx, text); err != nil {
			return err
		}
		writeOutputf(ctx, exec, name, "Entry %d is now %q.\n", idx+1, text)
		return nil

	default:
		return command.ErrInvalidArgs(name, usage)
	}
}
