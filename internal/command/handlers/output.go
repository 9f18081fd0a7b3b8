// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/observability"
)

// logOutputError logs and counts a failed write. Output failures never
// fail a command; the state change has already happened.
func logOutputError(ctx context.Context, cmd string, bytesWritten int, err error) {
	observability.RecordCommandOutputFailure(cmd)
	slog.WarnContext(ctx, "failed to write command output",
		"command", cmd,
		"bytes_written", bytesWritten,
		"error", err,
	)
}

// writeOutput writes one line to the command output.
func writeOutput(ctx context.Context, exec *command.CommandExecution, cmd, msg string) {
	if n, err := fmt.Fprintln(exec.Output, msg); err != nil {
		logOutputError(ctx, cmd, n, err)
	}
}

// writeOutputf writes a formatted message to the command output.
func writeOutputf(ctx context.Context, exec *command.CommandExecution, cmd, format string, args ...any) {
	if n, err := fmt.Fprintf(exec.Output, format, args...); err != nil {
		logOutputError(ctx, cmd, n, err)
	}
}
