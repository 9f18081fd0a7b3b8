// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package core contains the game clock, turn pipeline and session state.
package core

import "slices"

// DefaultProcessIntervalMinutes is the spacing between turns in game minutes.
const DefaultProcessIntervalMinutes uint64 = 10

// Defaults for the add-light draft fields.
const (
	DefaultNewLightMinutes uint32 = 60
	DefaultNewLightRange   uint32 = 30
	draftResetRange        uint32 = 20
)

var defaultEncounterTable = []string{
	"Goblin scouts",
	"Skeleton patrol",
	"Oozing slime",
	"Lost adventurer",
	"Swarm of bats",
	"Mimic chest",
}

var defaultAmbientEventTable = []string{
	"You hear a distant moan in the dark...",
	"A gust of wind threatens to blow out a torch.",
	"You stumble over loose stones, nearly falling.",
	"The smell of sulfur fills the air.",
	"Whispers echo from nowhere.",
	"A rat darts between your feet.",
}

// DefaultEncounterTable returns a copy of the built-in encounter table.
func DefaultEncounterTable() []string { return slices.Clone(defaultEncounterTable) }

// DefaultAmbientEventTable returns a copy of the built-in ambient event table.
func DefaultAmbientEventTable() []string { return slices.Clone(defaultAmbientEventTable) }

// LightSource is a torch, lantern or spell carried by the party.
type LightSource struct {
	Label            string    `json:"label" jsonschema:"required"`
	Kind             LightKind `json:"light_type" jsonschema:"required"`
	RadiusFeet       uint32    `json:"radius_feet" jsonschema:"required"`
	MinutesRemaining uint32    `json:"minutes_remaining" jsonschema:"required"`
	// LastRoll is the most recent burn-check die.
	LastRoll *uint8 `json:"last_roll" jsonschema:"nullable"`
}

// TurnEntry groups the log lines written during one turn.
type TurnEntry struct {
	Turn   uint32   `json:"turn" jsonschema:"required"`
	Events []string `json:"events" jsonschema:"required"`
}

// GameState is the whole mutable snapshot of a running session. Its JSON
// form is the save file format.
type GameState struct {
	Turn              uint32        `json:"turn" jsonschema:"required"`
	LightSources      []LightSource `json:"light_sources" jsonschema:"required"`
	EncounterTable    []string      `json:"encounter_table" jsonschema:"required"`
	AmbientEventTable []string      `json:"torch_event_table" jsonschema:"required"`
	EncounterRoll     *uint8        `json:"encounter_roll" jsonschema:"nullable"`
	EventLog          []TurnEntry   `json:"event_log" jsonschema:"required"`
	ClockElapsed      uint64        `json:"clock_elapsed" jsonschema:"required"`

	// NextTriggerMinutes is nil until the running clock arms it.
	NextTriggerMinutes     *uint64 `json:"next_process_minutes,omitempty"`
	ProcessIntervalMinutes uint64  `json:"process_interval_minutes,omitempty"`

	NewLightType    LightKind `json:"new_light_type" jsonschema:"required"`
	NewLightLabel   string    `json:"new_light_label" jsonschema:"required"`
	NewLightMinutes uint32    `json:"new_light_minutes" jsonschema:"required"`
	NewLightRange   uint32    `json:"new_light_range" jsonschema:"required"`
}

// Defaults overrides the values a fresh GameState starts with.
// Zero values fall back to the built-in defaults.
type Defaults struct {
	ProcessIntervalMinutes uint64
	EncounterTable         []string
	AmbientEventTable      []string
}

// NewGameState returns a state with every field at its default.
func NewGameState() *GameState {
	return NewGameStateWith(Defaults{})
}

// NewGameStateWith returns a fresh state using the given defaults.
func NewGameStateWith(d Defaults) *GameState {
	s := &GameState{
		LightSources:           []LightSource{},
		EncounterTable:         DefaultEncounterTable(),
		AmbientEventTable:      DefaultAmbientEventTable(),
		EventLog:               []TurnEntry{},
		ProcessIntervalMinutes: DefaultProcessIntervalMinutes,
		NewLightType:           Torch(),
		NewLightMinutes:        DefaultNewLightMinutes,
		NewLightRange:          DefaultNewLightRange,
	}
	if d.ProcessIntervalMinutes > 0 {
		s.ProcessIntervalMinutes = d.ProcessIntervalMinutes
	}
	if len(d.EncounterTable) > 0 {
		s.EncounterTable = slices.Clone(d.EncounterTable)
	}
	if len(d.AmbientEventTable) > 0 {
		s.AmbientEventTable = slices.Clone(d.AmbientEventTable)
	}
	return s
}

// Interval returns the configured turn spacing, treating zero as the default.
func (s *GameState) Interval() uint64 {
	if s.ProcessIntervalMinutes == 0 {
		return DefaultProcessIntervalMinutes
	}
	return s.ProcessIntervalMinutes
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	c := *s
	if s.LightSources != nil {
		c.LightSources = make([]LightSource, len(s.LightSources))
		for i, l := range s.LightSources {
			c.LightSources[i] = l
			if l.LastRoll != nil {
				roll := *l.LastRoll
				c.LightSources[i].LastRoll = &roll
			}
		}
	}
	c.EncounterTable = slices.Clone(s.EncounterTable)
	c.AmbientEventTable = slices.Clone(s.AmbientEventTable)
	if s.EventLog != nil {
		c.EventLog = make([]TurnEntry, len(s.EventLog))
		for i, e := range s.EventLog {
			c.EventLog[i] = TurnEntry{Turn: e.Turn, Events: slices.Clone(e.Events)}
		}
	}
	if s.EncounterRoll != nil {
		roll := *s.EncounterRoll
		c.EncounterRoll = &roll
	}
	if s.NextTriggerMinutes != nil {
		next := *s.NextTriggerMinutes
		c.NextTriggerMinutes = &next
	}
	return &c
}
