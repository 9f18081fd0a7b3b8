// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package core

import "slices"

// LogEvent appends text to the log entry for the state's current turn,
// creating the entry if this is the turn's first line.
func LogEvent(state *GameState, text string) {
	for i := range state.EventLog {
		if state.EventLog[i].Turn == state.Turn {
			state.EventLog[i].Events = append(state.EventLog[i].Events, text)
			return
		}
	}
	state.EventLog = append(state.EventLog, TurnEntry{
		Turn:   state.Turn,
		Events: []string{text},
	})
}

// EntryFor returns the log entry for turn, if one exists.
func EntryFor(log []TurnEntry, turn uint32) (TurnEntry, bool) {
	for _, e := range log {
		if e.Turn == turn {
			return e, true
		}
	}
	return TurnEntry{}, false
}

// NewestFirst returns a display copy of the log with the latest turn first
// and, within each turn, the latest event first. The input is not modified.
func NewestFirst(log []TurnEntry) []TurnEntry {
	out := make([]TurnEntry, len(log))
	for i, e := range log {
		events := slices.Clone(e.Events)
		slices.Reverse(events)
		out[len(log)-1-i] = TurnEntry{Turn: e.Turn, Events: events}
	}
	return out
}
