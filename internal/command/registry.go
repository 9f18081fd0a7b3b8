// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package command

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/oops"
)

// Registry manages command registration and lookup by name or alias.
// It is safe for concurrent access.
type Registry struct {
	commands map[string]CommandEntry
	aliases  map[string]string
	mu       sync.RWMutex
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandEntry),
		aliases:  make(map[string]string),
	}
}

// Register adds a command. Names and aliases are validated. Registering a
// name twice overwrites the earlier entry with a warning.
func (r *Registry) Register(entry CommandEntry) error {
	if err := ValidateCommandName(entry.Name); err != nil {
		return err
	}
	if entry.Handler == nil {
		return oops.Code(CodeInvalidName).With("command", entry.Name).Errorf("command %s has no handler", entry.Name)
	}
	for _, a := range entry.Aliases {
		if err := ValidateAliasName(a); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.commands[entry.Name]; ok {
		slog.Warn("command conflict: overwriting existing command",
			"command", entry.Name,
			"previous_source", existing.Source,
			"new_source", entry.Source)
		for _, a := range existing.Aliases {
			delete(r.aliases, a)
		}
	}
	for _, a := range entry.Aliases {
		if _, taken := r.commands[a]; taken {
			return oops.Code(CodeInvalidName).
				With("alias", a).
				Errorf("alias %s shadows a command", a)
		}
		r.aliases[a] = entry.Name
	}

	r.commands[entry.Name] = entry
	return nil
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) (CommandEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.commands[name]; ok {
		return entry, true
	}
	if canonical, ok := r.aliases[name]; ok {
		entry, ok := r.commands[canonical]
		return entry, ok
	}
	return CommandEntry{}, false
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []CommandEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]CommandEntry, 0, len(r.commands))
	for _, e := range r.commands {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
