// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowtrack/shadowtrack/internal/core"
)

func TestWriteState_Empty(t *testing.T) {
	buf := new(bytes.Buffer)
	writeState(buf, core.NewGameState())

	out := buf.String()
	assert.Contains(t, out, "Game Time: 00:00")
	assert.Contains(t, out, "Turn: 0")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "(empty)")
	assert.NotContains(t, out, "Next turn at")
}

func TestWriteState_LogIsNewestFirst(t *testing.T) {
	state := core.NewGameState()
	state.ClockElapsed = 1265
	next := uint64(30)
	state.NextTriggerMinutes = &next
	roll := uint8(2)
	state.LightSources = []core.LightSource{
		{Label: "Torch", Kind: core.Torch(), RadiusFeet: 30, MinutesRemaining: 40, LastRoll: &roll},
	}
	state.EventLog = []core.TurnEntry{
		{Turn: 1, Events: []string{"first", "second"}},
		{Turn: 2, Events: []string{"third"}},
	}

	buf := new(bytes.Buffer)
	writeState(buf, state)
	out := buf.String()

	assert.Contains(t, out, "Game Time: 21:05")
	assert.Contains(t, out, "Next turn at: 30 min")
	assert.Contains(t, out, "1. Torch - Torch (30ft) Time left: 40 min Last Burn Roll: 2")

	turn2 := strings.Index(out, "Turn 2:")
	turn1 := strings.Index(out, "Turn 1:")
	require.NotEqual(t, -1, turn2)
	require.NotEqual(t, -1, turn1)
	assert.Less(t, turn2, turn1)
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}

func TestShowCommand(t *testing.T) {
	configFile = ""
	state := core.NewGameState()
	state.Turn = 4
	path := writeTestSave(t, state)

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"show", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Turn: 4")
}
