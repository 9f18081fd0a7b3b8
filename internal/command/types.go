// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package command provides the console command registry, parser and
// dispatcher used by the terminal UI command line.
package command

import (
	"context"
	"io"
	"slices"

	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/save"
)

// CommandHandler is the function signature for command handlers.
//
//nolint:revive // stutter kept for symmetry with CommandEntry
type CommandHandler func(ctx context.Context, exec *CommandExecution) error

// CommandEntry is a registered console command.
//
//nolint:revive // stutter kept for symmetry with CommandHandler
type CommandEntry struct {
	Name     string         // canonical name (e.g., "light")
	Aliases  []string       // alternative names (e.g., "l")
	Handler  CommandHandler // Go handler
	Help     string         // short description (one line)
	Usage    string         // usage pattern (e.g., "light add <kind> <label>")
	HelpText string         // detailed markdown help
	Source   string         // "core" for built-in commands
}

// GetAliases returns a copy of the entry's aliases.
func (e CommandEntry) GetAliases() []string {
	return slices.Clone(e.Aliases)
}

// CommandExecution carries everything a handler may touch.
//
//nolint:revive // stutter kept for symmetry with CommandEntry
type CommandExecution struct {
	Args      string
	InvokedAs string
	Output    io.Writer
	Services  *Services
}

// Services gives handlers access to the running session.
// Handlers MUST NOT keep references beyond one execution.
type Services struct {
	Session  *core.Session
	Picker   save.FilePicker // used when save or load get no path
	Registry *Registry       // used by help
	// OnLoad is called after a load replaced the session state. Optional.
	OnLoad func(path string)
}
