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

func TestClockHandler(t *testing.T) {
	exec, out := testutil.NewExecutionBuilder().Build()
	s := exec.Services.Session

	require.NoError(t, ClockHandler(context.Background(), exec))
	assert.Equal(t, "Game Time: 00:00 (stopped)\n", out.String())

	exec.Args = "start"
	require.NoError(t, ClockHandler(context.Background(), exec))
	assert.True(t, s.ClockRunning())

	exec.Args = "toggle"
	require.NoError(t, ClockHandler(context.Background(), exec))
	assert.False(t, s.ClockRunning())

	s.AdvanceClock(125)
	exec.Args = "stop"
	out.Reset()
	require.NoError(t, ClockHandler(context.Background(), exec))
	assert.Equal(t, "Game Time: 02:05 (stopped)\n", out.String())

	exec.Args = "reset"
	require.NoError(t, ClockHandler(context.Background(), exec))
	assert.Zero(t, s.State().ClockElapsed)
}

func TestClockHandler_InvalidArgs(t *testing.T) {
	for _, args := range []string{"sideways", "start now"} {
		exec, _ := testutil.NewExecutionBuilder().WithArgs(args).Build()
		errutil.AssertErrorCode(t, ClockHandler(context.Background(), exec), command.CodeInvalidArgs)
	}
}

func TestAdvanceHandler(t *testing.T) {
	tests := []struct {
		args    string
		want    uint64
		wantErr bool
	}{
		{"90", 90, false},
		{"5m", 300, false},
		{"1m30s", 90, false},
		{"0", 0, false},
		{"1.5s", 0, true},
		{"-5m", 0, true},
		{"soon", 0, true},
		{"", 0, true},
		{"1 2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			exec, _ := testutil.NewExecutionBuilder().WithArgs(tt.args).Build()
			err := AdvanceHandler(context.Background(), exec)
			if tt.wantErr {
				errutil.AssertErrorCode(t, err, command.CodeInvalidArgs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, exec.Services.Session.State().ClockElapsed)
			assert.Zero(t, exec.Services.Session.State().Turn)
		})
	}
}
