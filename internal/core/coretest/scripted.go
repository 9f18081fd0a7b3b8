// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package coretest provides deterministic test doubles for the core package.
package coretest

// ScriptedSource is a core.RandomSource that replays fixed values.
// Rolls and choices each cycle through their script independently.
type ScriptedSource struct {
	rolls   []uint32
	picks   []int
	rollPos int
	pickPos int

	// RollCalls and ChooseCalls count how often each method ran.
	RollCalls   int
	ChooseCalls int
}

// NewScriptedSource returns a source that yields rolls from rolls and
// table positions from picks.
func NewScriptedSource(rolls []uint32, picks []int) *ScriptedSource {
	return &ScriptedSource{rolls: rolls, picks: picks}
}

// RollRange returns the next scripted roll, ignoring the bounds.
// With an empty roll script it returns lo.
func (s *ScriptedSource) RollRange(lo, _ uint32) uint32 {
	s.RollCalls++
	if len(s.rolls) == 0 {
		return lo
	}
	v := s.rolls[s.rollPos]
	s.rollPos = (s.rollPos + 1) % len(s.rolls)
	return v
}

// ChooseIndex returns the next scripted pick reduced modulo n.
// With an empty pick script it returns the first element.
func (s *ScriptedSource) ChooseIndex(n int) (int, bool) {
	s.ChooseCalls++
	if n <= 0 {
		return 0, false
	}
	if len(s.picks) == 0 {
		return 0, true
	}
	v := s.picks[s.pickPos] % n
	s.pickPos = (s.pickPos + 1) % len(s.picks)
	return v, true
}
