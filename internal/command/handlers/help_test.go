// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/command/handlers/testutil"
	"github.com/shadowtrack/shadowtrack/pkg/errutil"
)

func TestHelpHandler(t *testing.T) {
	reg := command.NewRegistry()
	RegisterAll(reg)
	exec, out := testutil.NewExecutionBuilder().WithRegistry(reg).Build()

	require.NoError(t, HelpHandler(context.Background(), exec))
	assert.Contains(t, out.String(), "light (l)")
	assert.Contains(t, out.String(), "Save the game state")

	out.Reset()
	exec.Args = "l"
	require.NoError(t, HelpHandler(context.Background(), exec))
	assert.Contains(t, out.String(), "Usage: light")
	assert.Contains(t, out.String(), "gutters")

	exec.Args = "fly"
	errutil.AssertErrorCode(t, HelpHandler(context.Background(), exec), command.CodeUnknownCommand)
}

func TestHelpHandler_NoRegistry(t *testing.T) {
	exec, _ := testutil.NewExecutionBuilder().Build()
	errutil.AssertErrorCode(t, HelpHandler(context.Background(), exec), command.CodeCommandFailed)
}

func TestRegisterAll(t *testing.T) {
	reg := command.NewRegistry()
	RegisterAll(reg)

	for _, name := range []string{
		"help", "clock", "advance", "light", "encounter", "event", "tables", "save", "load", "reset",
		"h", "adv", "l", "enc", "ev",
	} {
		entry, ok := reg.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "core", entry.Source)
		assert.NotEmpty(t, entry.Usage, name)
		assert.NotEmpty(t, entry.Help, name)
	}
}
