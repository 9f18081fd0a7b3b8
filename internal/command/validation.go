// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package command

import (
	"regexp"
	"strings"

	"github.com/samber/oops"
)

// MaxNameLength is the maximum length for command and alias names.
const MaxNameLength = 20

// Names start with a lowercase letter, followed by lowercase letters,
// digits, '-' or '_'. Parse lowercases input, so uppercase names could
// never be reached.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_\-]{0,19}$`)

// ValidateCommandName validates a command name.
func ValidateCommandName(name string) error {
	return validateName(name, "command")
}

// ValidateAliasName validates an alias name.
func ValidateAliasName(name string) error {
	return validateName(name, "alias")
}

func validateName(name, kind string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return oops.Code(CodeInvalidName).
			With("kind", kind).
			Errorf("%s name cannot be empty", kind)
	}
	if len(trimmed) > MaxNameLength {
		return oops.Code(CodeInvalidName).
			With("kind", kind).
			With("length", len(trimmed)).
			With("max", MaxNameLength).
			Errorf("%s name exceeds maximum length of %d", kind, MaxNameLength)
	}
	if trimmed != name || !namePattern.MatchString(trimmed) {
		return oops.Code(CodeInvalidName).
			With("kind", kind).
			With("name", name).
			Errorf("%s name must be lowercase letters, digits, '-' or '_'", kind)
	}
	return nil
}
