// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package command

import (
	"strings"

	"github.com/samber/oops"
)

// ParsedCommand represents a parsed command line.
type ParsedCommand struct {
	Name string // command name (first whitespace-delimited token, lowercased)
	Args string // unparsed argument string (preserves internal whitespace)
	Raw  string // original input
}

// Parse splits raw input into command name and arguments. A leading ':' as
// typed into the command line is ignored.
func Parse(input string) (*ParsedCommand, error) {
	trimmed := strings.TrimSpace(input)
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, ":"))
	if trimmed == "" {
		return nil, oops.Code(CodeEmptyInput).Errorf("no command provided")
	}

	idx := strings.IndexAny(trimmed, " \t")
	if idx == -1 {
		return &ParsedCommand{Name: strings.ToLower(trimmed), Raw: input}, nil
	}

	return &ParsedCommand{
		Name: strings.ToLower(trimmed[:idx]),
		Args: strings.TrimLeft(trimmed[idx+1:], " \t"),
		Raw:  input,
	}, nil
}

// Fields splits an argument string on whitespace. Double quotes group words,
// so `light add torch "Back rank"` yields a two-word label.
func Fields(args string) []string {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		hasWord bool
	)
	for _, r := range args {
		switch {
		case r == '"':
			quoted = !quoted
			hasWord = true
		case (r == ' ' || r == '\t') && !quoted:
			if hasWord {
				out = append(out, cur.String())
				cur.Reset()
				hasWord = false
			}
		default:
			cur.WriteRune(r)
			hasWord = true
		}
	}
	if hasWord {
		out = append(out, cur.String())
	}
	return out
}
