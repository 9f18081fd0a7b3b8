// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package core

import "slices"

// Turn pipeline constants.
const (
	BurnMinutesPerTurn uint32 = 10
	BurnDie            uint32 = 6
	// A burn roll at or below this costs an extra BurnMinutesPerTurn.
	BurnGutterThreshold uint32 = 2
	EncounterDie        uint32 = 6
	EncounterHit        uint32 = 1
)

// Fixed log lines written by the encounter roll.
const (
	EncounterPrefix         = "!ENCOUNTER! - "
	NoEncounterText         = "No encounter"
	EmptyEncounterTableText = "[Error] Encounter table empty!"
)

// BurnResult records what one light source lost during a turn.
type BurnResult struct {
	Label            string
	Roll             uint8
	MinutesBurned    uint32
	MinutesRemaining uint32
}

// Guttered reports whether the burn roll cost extra time.
func (b BurnResult) Guttered() bool { return uint32(b.Roll) <= BurnGutterThreshold }

// EncounterResult is the outcome of one encounter check.
type EncounterResult struct {
	Forced bool
	// Rolled is false when a forced check skipped the die.
	Rolled bool
	Roll   uint8
	Hit    bool
	// TableEmpty is set when a hit found nothing to draw.
	TableEmpty bool
	Entry      string
	Text       string
}

// TurnReport describes everything one pass of the turn pipeline did.
type TurnReport struct {
	Turn         uint32
	ClockElapsed uint64
	Burns        []BurnResult
	Ambient      string
	HasAmbient   bool
	Encounter    EncounterResult
	Events       []string
}

// TurnProcessor runs the per-turn pipeline: light burn-down, then the
// ambient event, then the encounter roll.
type TurnProcessor struct {
	rng RandomSource
}

// NewTurnProcessor creates a processor drawing from rng.
func NewTurnProcessor(rng RandomSource) *TurnProcessor {
	return &TurnProcessor{rng: rng}
}

// Process advances the turn counter and runs the whole pipeline, attributing
// every log line to the new turn.
func (p *TurnProcessor) Process(state *GameState) TurnReport {
	state.Turn++

	report := TurnReport{Turn: state.Turn}
	report.Burns = p.BurnLights(state)
	report.Ambient, report.HasAmbient = p.RollAmbientEvent(state)
	report.Encounter = p.RollEncounter(state, false)
	report.ClockElapsed = state.ClockElapsed
	if entry, ok := EntryFor(state.EventLog, state.Turn); ok {
		report.Events = slices.Clone(entry.Events)
	}
	return report
}

// BurnLights depletes every light source by one turn and rolls its burn check.
func (p *TurnProcessor) BurnLights(state *GameState) []BurnResult {
	results := make([]BurnResult, 0, len(state.LightSources))
	for i := range state.LightSources {
		light := &state.LightSources[i]
		before := light.MinutesRemaining
		light.MinutesRemaining = saturatingSub(light.MinutesRemaining, BurnMinutesPerTurn)

		roll := p.rng.RollRange(1, BurnDie)
		r := uint8(roll)
		light.LastRoll = &r
		if roll <= BurnGutterThreshold {
			light.MinutesRemaining = saturatingSub(light.MinutesRemaining, BurnMinutesPerTurn)
		}

		results = append(results, BurnResult{
			Label:            light.Label,
			Roll:             r,
			MinutesBurned:    before - light.MinutesRemaining,
			MinutesRemaining: light.MinutesRemaining,
		})
	}
	return results
}

// RollAmbientEvent draws one ambient event and logs it verbatim.
// An empty table logs nothing.
func (p *TurnProcessor) RollAmbientEvent(state *GameState) (string, bool) {
	event, ok := Choose(p.rng, state.AmbientEventTable)
	if !ok {
		return "", false
	}
	LogEvent(state, event)
	return event, true
}

// RollEncounter checks for an encounter. A forced check skips the d6.
func (p *TurnProcessor) RollEncounter(state *GameState, forced bool) EncounterResult {
	result := EncounterResult{Forced: forced}
	if !forced {
		roll := p.rng.RollRange(1, EncounterDie)
		r := uint8(roll)
		state.EncounterRoll = &r
		result.Rolled = true
		result.Roll = r
	}

	result.Hit = forced || uint32(result.Roll) == EncounterHit
	if result.Hit {
		if entry, ok := Choose(p.rng, state.EncounterTable); ok {
			result.Entry = entry
			result.Text = EncounterPrefix + entry
		} else {
			result.TableEmpty = true
			result.Text = EmptyEncounterTableText
		}
	} else {
		result.Text = NoEncounterText
	}

	LogEvent(state, result.Text)
	return result
}

func saturatingSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}
