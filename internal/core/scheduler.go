// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package core

import "time"

// Scheduler converts wall-clock time into game-clock seconds and decides
// when a turn is due. It holds only the wall-clock bookkeeping; the game
// clock itself lives in GameState so it survives save and load.
//
// Known limitation: a single call that crosses several interval boundaries
// fires one turn, not one per boundary.
type Scheduler struct {
	running  bool
	lastTick time.Time
}

// NewScheduler returns a stopped scheduler whose last check is now.
func NewScheduler(now time.Time) *Scheduler {
	return &Scheduler{lastTick: now}
}

// Running reports whether the game clock is running.
func (s *Scheduler) Running() bool { return s.running }

// Start starts the game clock.
func (s *Scheduler) Start() { s.running = true }

// Stop freezes the game clock. Elapsed time and the armed trigger are kept.
func (s *Scheduler) Stop() { s.running = false }

// Toggle flips between running and stopped.
func (s *Scheduler) Toggle() { s.running = !s.running }

// ShouldTick returns the whole seconds elapsed since the last recorded check
// when at least one second has passed, and records the check. The sub-second
// remainder is carried into the next call. Below one second nothing changes.
func (s *Scheduler) ShouldTick(now time.Time) (uint64, bool) {
	elapsed := now.Sub(s.lastTick)
	if elapsed < time.Second {
		return 0, false
	}
	secs := uint64(elapsed / time.Second)
	s.lastTick = s.lastTick.Add(time.Duration(secs) * time.Second)
	return secs, true
}

// Tick runs one wall-clock check. While the clock is running the elapsed
// seconds are fed to OnTick; while stopped they are discarded.
func (s *Scheduler) Tick(now time.Time, state *GameState, fire func(*GameState)) bool {
	secs, ok := s.ShouldTick(now)
	if !ok || !s.running {
		return false
	}
	return s.OnTick(state, secs, fire)
}

// Advance adds seconds to the game clock regardless of the running state.
func Advance(state *GameState, seconds uint64) {
	state.ClockElapsed += seconds
}

// OnTick adds seconds to the game clock and applies the trigger policy.
// The first call arms the trigger one interval out without firing. Later
// calls fire once when the elapsed minutes reach the trigger and re-arm it
// one interval past the current minute. It reports whether fire ran.
func (s *Scheduler) OnTick(state *GameState, seconds uint64, fire func(*GameState)) bool {
	state.ClockElapsed += seconds
	elapsedMinutes := state.ClockElapsed / 60

	if state.NextTriggerMinutes == nil {
		next := state.Interval()
		state.NextTriggerMinutes = &next
		return false
	}
	if elapsedMinutes < *state.NextTriggerMinutes {
		return false
	}

	fire(state)
	next := elapsedMinutes + state.Interval()
	state.NextTriggerMinutes = &next
	return true
}

// ResetClock zeroes the game clock, disarms the trigger and stops the clock.
func (s *Scheduler) ResetClock(state *GameState) {
	s.running = false
	state.ClockElapsed = 0
	state.NextTriggerMinutes = nil
}

// Resync makes now the last recorded check, discarding any pending seconds.
func (s *Scheduler) Resync(now time.Time) { s.lastTick = now }
