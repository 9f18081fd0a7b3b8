// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/core"
)

// parsePosition converts a 1-based list position into a slice index.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, oops.Code(command.CodeInvalidArgs).With("position", s).Errorf("position must be a number from 1")
	}
	return n - 1, nil
}

// parseUint parses a non-negative 32-bit value.
func parseUint(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, oops.Code(command.CodeInvalidArgs).With("value", s).Errorf("expected a whole number: %s", s)
	}
	return uint32(n), nil
}

// parseSeconds accepts bare seconds ("90") or a Go duration ("5m", "1m30s").
// Durations must be whole seconds.
func parseSeconds(s string) (uint64, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 || d%time.Second != 0 {
		return 0, oops.Code(command.CodeInvalidArgs).With("value", s).Errorf("expected seconds or a duration like 5m: %s", s)
	}
	return uint64(d / time.Second), nil
}

// parseKind reads torch, lantern or spell:<name>.
func parseKind(s string) (core.LightKind, error) {
	lower := strings.ToLower(s)
	switch {
	case lower == "torch":
		return core.Torch(), nil
	case lower == "lantern":
		return core.Lantern(), nil
	case strings.HasPrefix(lower, "spell:"):
		name := strings.TrimSpace(s[len("spell:"):])
		if name == "" {
			return core.LightKind{}, oops.Code(command.CodeInvalidArgs).Errorf("spell needs a name: spell:<name>")
		}
		return core.Spell(name), nil
	default:
		return core.LightKind{}, oops.Code(command.CodeInvalidArgs).With("kind", s).Errorf("unknown light kind %q", s)
	}
}

// splitFirst splits args into the first field and the rest, trimmed.
func splitFirst(args string) (string, string) {
	args = strings.TrimSpace(args)
	idx := strings.IndexAny(args, " \t")
	if idx == -1 {
		return strings.ToLower(args), ""
	}
	return strings.ToLower(args[:idx]), strings.TrimSpace(args[idx+1:])
}
