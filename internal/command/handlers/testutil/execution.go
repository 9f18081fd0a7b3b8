// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package testutil builds command executions over a scripted session.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/core"
	"github.com/shadowtrack/shadowtrack/internal/core/coretest"
	"github.com/shadowtrack/shadowtrack/internal/save"
)

// Epoch is the fixed wall clock used by test sessions.
var Epoch = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

// ExecutionBuilder builds CommandExecution instances with an attached output buffer.
type ExecutionBuilder struct {
	args     string
	rng      core.RandomSource
	state    *core.GameState
	picker   save.FilePicker
	registry *command.Registry
	onLoad   func(string)
}

// NewExecutionBuilder creates a builder whose session draws from an empty script.
func NewExecutionBuilder() *ExecutionBuilder {
	return &ExecutionBuilder{rng: coretest.NewScriptedSource(nil, nil)}
}

// WithArgs sets the command arguments.
func (b *ExecutionBuilder) WithArgs(args string) *ExecutionBuilder {
	b.args = args
	return b
}

// WithRandom sets the session's random source.
func (b *ExecutionBuilder) WithRandom(rng core.RandomSource) *ExecutionBuilder {
	b.rng = rng
	return b
}

// WithState starts the session from state.
func (b *ExecutionBuilder) WithState(state *core.GameState) *ExecutionBuilder {
	b.state = state
	return b
}

// WithPicker sets the file picker used by save and load.
func (b *ExecutionBuilder) WithPicker(p save.FilePicker) *ExecutionBuilder {
	b.picker = p
	return b
}

// WithRegistry exposes reg to the help command.
func (b *ExecutionBuilder) WithRegistry(reg *command.Registry) *ExecutionBuilder {
	b.registry = reg
	return b
}

// WithOnLoad sets the load callback.
func (b *ExecutionBuilder) WithOnLoad(fn func(string)) *ExecutionBuilder {
	b.onLoad = fn
	return b
}

// Build returns the execution and its output buffer.
func (b *ExecutionBuilder) Build() (*command.CommandExecution, *bytes.Buffer) {
	opts := []core.SessionOption{
		core.WithNow(func() time.Time { return Epoch }),
		core.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	if b.state != nil {
		opts = append(opts, core.WithState(b.state))
	}
	out := &bytes.Buffer{}
	return &command.CommandExecution{
		Args:   b.args,
		Output: out,
		Services: &command.Services{
			Session:  core.NewSession(b.rng, opts...),
			Picker:   b.picker,
			Registry: b.registry,
			OnLoad:   b.onLoad,
		},
	}, out
}
