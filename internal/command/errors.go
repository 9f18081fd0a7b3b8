// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package command

import (
	"github.com/samber/oops"

	"github.com/shadowtrack/shadowtrack/internal/save"
)

// Error codes for command dispatch failures.
const (
	CodeEmptyInput     = "EMPTY_INPUT"
	CodeUnknownCommand = "UNKNOWN_COMMAND"
	CodeInvalidArgs    = "INVALID_ARGS"
	CodeInvalidName    = "INVALID_NAME"
	CodeNilServices    = "NIL_SERVICES"
	CodeCommandFailed  = "COMMAND_FAILED"
)

// Codes raised by the session that handlers pass through.
const (
	codeInvalidLight       = "INVALID_LIGHT"
	codeLightNotFound      = "LIGHT_NOT_FOUND"
	codeTableEntryNotFound = "TABLE_ENTRY_NOT_FOUND"
)

// ErrNilRegistry is returned when a dispatcher is built without a registry.
var ErrNilRegistry = oops.Code(CodeNilServices).Errorf("registry is required")

// ErrUnknownCommand creates an error for an unknown command.
func ErrUnknownCommand(cmd string) error {
	return oops.Code(CodeUnknownCommand).
		With("command", cmd).
		Errorf("unknown command: %s", cmd)
}

// ErrInvalidArgs creates an error for invalid arguments.
func ErrInvalidArgs(cmd, usage string) error {
	return oops.Code(CodeInvalidArgs).
		With("command", cmd).
		With("usage", usage).
		Errorf("invalid arguments")
}

// ErrNilServices is returned when an execution has no session to act on.
func ErrNilServices() error {
	return oops.Code(CodeNilServices).Errorf("command execution has no session")
}

// CommandFailed wraps cause with a user-facing message.
func CommandFailed(message string, cause error) error {
	builder := oops.Code(CodeCommandFailed).With("message", message)
	if cause != nil {
		return builder.Wrap(cause)
	}
	return builder.Errorf("%s", message)
}

// UserMessage turns an error into a one-line message for the status bar.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return "Something went wrong: " + err.Error()
	}

	switch oopsErr.Code() {
	case CodeEmptyInput:
		return "Type a command, or 'help'."
	case CodeUnknownCommand:
		return "Unknown command. Try 'help'."
	case CodeInvalidArgs:
		if usage, ok := oopsErr.Context()["usage"].(string); ok && usage != "" {
			return "Usage: " + usage
		}
		return "Invalid arguments."
	case codeInvalidLight:
		return "A light source needs a label (and a spell name for spells)."
	case codeLightNotFound:
		return "No light source at that position."
	case codeTableEntryNotFound:
		return "No table entry at that position."
	case string(save.KindNoFileSelected):
		return "No file selected."
	case string(save.KindIO):
		return "Could not read or write the file: " + oopsErr.Error()
	case string(save.KindSerialization):
		return "The file is not a valid save: " + oopsErr.Error()
	case CodeCommandFailed:
		if msg, ok := oopsErr.Context()["message"].(string); ok {
			return msg
		}
		return "Command failed."
	default:
		return "Something went wrong: " + oopsErr.Error()
	}
}
