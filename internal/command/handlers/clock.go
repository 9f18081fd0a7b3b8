// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package handlers

import (
	"context"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/core"
)

const clockUsage = "clock [start|stop|toggle|reset]"

// ClockHandler shows or controls the game clock.
func ClockHandler(ctx context.Context, exec *command.CommandExecution) error {
	s := exec.Services.Session
	sub, rest := splitFirst(exec.Args)
	if rest != "" {
		return command.ErrInvalidArgs("clock", clockUsage)
	}

	switch sub {
	case "":
	case "start":
		s.StartClock()
	case "stop":
		s.StopClock()
	case "toggle":
		s.ToggleClock()
	case "reset":
		s.ResetClock()
	default:
		return command.ErrInvalidArgs("clock", clockUsage)
	}

	writeOutput(ctx, exec, "clock", clockStatus(s))
	return nil
}

func clockStatus(s *core.Session) string {
	state := "stopped"
	if s.ClockRunning() {
		state = "running"
	}
	return "Game Time: " + core.FormatClock(s.State().ClockElapsed) + " (" + state + ")"
}

const advanceUsage = "advance <seconds|duration>"

// AdvanceHandler adds time to the game clock without firing turns.
func AdvanceHandler(ctx context.Context, exec *command.CommandExecution) error {
	fields := command.Fields(exec.Args)
	if len(fields) != 1 {
		return command.ErrInvalidArgs("advance", advanceUsage)
	}
	secs, err := parseSeconds(fields[0])
	if err != nil {
		return err
	}
	exec.Services.Session.AdvanceClock(secs)
	writeOutput(ctx, exec, "advance", clockStatus(exec.Services.Session))
	return nil
}
