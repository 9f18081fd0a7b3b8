// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package handlers

import (
	"context"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/save"
)

// picker returns a fixed-path picker when a path was given, else the
// session's configured picker.
func picker(exec *command.CommandExecution, path string) save.FilePicker {
	if path != "" {
		return save.PathPicker{Path: path}
	}
	if exec.Services.Picker != nil {
		return exec.Services.Picker
	}
	return save.DirPicker{}
}

// SaveHandler writes the game state to a save file.
func SaveHandler(ctx context.Context, exec *command.CommandExecution) error {
	fields := command.Fields(exec.Args)
	if len(fields) > 1 {
		return command.ErrInvalidArgs("save", "save [path]")
	}
	var path string
	if len(fields) == 1 {
		path = fields[0]
	}

	written, err := save.SaveTo(picker(exec, path), exec.Services.Session.State())
	if err != nil {
		return err
	}
	if written == "" {
		writeOutput(ctx, exec, "save", "Save cancelled.")
		return nil
	}
	writeOutput(ctx, exec, "save", "Saved to "+written)
	return nil
}

// LoadHandler replaces the game state with a save file. A failed load
// leaves the current state untouched.
func LoadHandler(ctx context.Context, exec *command.CommandExecution) error {
	fields := command.Fields(exec.Args)
	if len(fields) > 1 {
		return command.ErrInvalidArgs("load", "load [path]")
	}
	var path string
	if len(fields) == 1 {
		path = fields[0]
	}

	state, loadedFrom, err := save.LoadFrom(picker(exec, path))
	if err != nil {
		return err
	}
	exec.Services.Session.Replace(state)
	if exec.Services.OnLoad != nil {
		exec.Services.OnLoad(loadedFrom)
	}
	writeOutputf(ctx, exec, "load", "Loaded %s (turn %d).\n", loadedFrom, state.Turn)
	return nil
}

// ResetHandler discards the game state and starts fresh.
func ResetHandler(ctx context.Context, exec *command.CommandExecution) error {
	if exec.Args != "" {
		return command.ErrInvalidArgs("reset", "reset")
	}
	exec.Services.Session.Reset()
	writeOutput(ctx, exec, "reset", "Session reset.")
	return nil
}

const tablesUsage = "tables load|export <path>"

// TablesHandler imports or exports both roll tables as YAML.
func TablesHandler(ctx context.Context, exec *command.CommandExecution) error {
	fields := command.Fields(exec.Args)
	if len(fields) != 2 {
		return command.ErrInvalidArgs("tables", tablesUsage)
	}
	s := exec.Services.Session
	path := fields[1]

	switch fields[0] {
	case "load":
		t, err := save.LoadTables(path)
		if err != nil {
			return err
		}
		s.ReplaceTables(t.Encounters, t.AmbientEvents)
		writeOutputf(ctx, exec, "tables", "Loaded tables from %s: %d encounters, %d ambient events.\n",
			path, len(s.State().EncounterTable), len(s.State().AmbientEventTable))
		return nil
	case "export":
		err := save.WriteTables(path, save.Tables{
			Encounters:    s.State().EncounterTable,
			AmbientEvents: s.State().AmbientEventTable,
		})
		if err != nil {
			return err
		}
		writeOutput(ctx, exec, "tables", "Exported tables to "+path)
		return nil
	default:
		return command.ErrInvalidArgs("tables", tablesUsage)
	}
}
