// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package handlers

import (
	"context"
	"strings"

	"github.com/shadowtrack/shadowtrack/internal/command"
)

// HelpHandler lists commands, or shows the help text of one.
func HelpHandler(ctx context.Context, exec *command.CommandExecution) error {
	reg := exec.Services.Registry
	if reg == nil {
		return command.CommandFailed("Help is not available.", nil)
	}

	name, _ := splitFirst(exec.Args)
	if name == "" {
		for _, e := range reg.All() {
			line := e.Name
			if len(e.Aliases) > 0 {
				line += " (" + strings.Join(e.GetAliases(), ", ") + ")"
			}
			writeOutputf(ctx, exec, "help", "%-22s %s\n", line, e.Help)
		}
		return nil
	}

	entry, ok := reg.Get(name)
	if !ok {
		return command.ErrUnknownCommand(name)
	}
	writeOutput(ctx, exec, "help", "Usage: "+entry.Usage)
	if entry.HelpText != "" {
		writeOutput(ctx, exec, "help", "")
		writeOutput(ctx, exec, "help", entry.HelpText)
	}
	return nil
}
