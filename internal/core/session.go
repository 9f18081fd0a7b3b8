// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package core

import (
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Observer is notified after each turn the clock fires.
type Observer interface {
	TurnProcessed(report TurnReport)
}

// EncounterObserver is optionally implemented by observers that also want
// manual encounter checks.
type EncounterObserver interface {
	EncounterRolled(result EncounterResult)
}

// Table selects one of the two editable roll tables.
type Table uint8

const (
	TableEncounters Table = iota
	TableAmbientEvents
)

func (t Table) String() string {
	switch t {
	case TableEncounters:
		return "encounters"
	case TableAmbientEvents:
		return "ambient_events"
	default:
		return "unknown"
	}
}

// Session is one running tracker: the game state, the clock that drives it
// and the turn pipeline. It is owned by a single event loop and is not safe
// for concurrent use.
type Session struct {
	id        ulid.ULID
	state     *GameState
	clock     *Scheduler
	processor *TurnProcessor
	defaults  Defaults
	logger    *slog.Logger
	observers []Observer
	now       func() time.Time
}

// SessionOption configures a Session during construction.
type SessionOption func(*Session)

// WithLogger sets the session logger. The session id is attached to it.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithObservers registers turn observers.
func WithObservers(observers ...Observer) SessionOption {
	return func(s *Session) { s.observers = append(s.observers, observers...) }
}

// WithDefaults sets the values used for fresh and reset states.
func WithDefaults(d Defaults) SessionOption {
	return func(s *Session) { s.defaults = d }
}

// WithState starts the session from an existing state instead of defaults.
func WithState(state *GameState) SessionOption {
	return func(s *Session) { s.state = state }
}

// WithNow replaces the wall clock, for tests.
func WithNow(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session with a stopped clock.
func NewSession(rng RandomSource, opts ...SessionOption) *Session {
	s := &Session{
		id:        NewULID(),
		processor: NewTurnProcessor(rng),
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state == nil {
		s.state = NewGameStateWith(s.defaults)
	}
	s.logger = s.logger.With("session_id", s.id.String())
	s.clock = NewScheduler(s.now())
	return s
}

// AddObserver registers an observer after construction, for observers that
// need the session id.
func (s *Session) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// ID returns the session identifier.
func (s *Session) ID() ulid.ULID { return s.id }

// State returns the live game state. Callers outside the event loop must
// treat it as read-only.
func (s *Session) State() *GameState { return s.state }

// ClockRunning reports whether the game clock is running.
func (s *Session) ClockRunning() bool { return s.clock.Running() }

// ToggleClock starts or stops the game clock.
func (s *Session) ToggleClock() {
	s.clock.Toggle()
	s.logger.Info("clock toggled", "running", s.clock.Running(), "clock_elapsed", s.state.ClockElapsed)
}

// StartClock starts the game clock.
func (s *Session) StartClock() { s.clock.Start() }

// StopClock stops the game clock.
func (s *Session) StopClock() { s.clock.Stop() }

// ResetClock zeroes the game clock and disarms the turn trigger.
func (s *Session) ResetClock() {
	s.clock.ResetClock(s.state)
	s.logger.Info("clock reset")
}

// AdvanceClock adds seconds to the game clock without firing turns.
func (s *Session) AdvanceClock(seconds uint64) {
	Advance(s.state, seconds)
	s.logger.Debug("advanced clock", "seconds", seconds, "clock_elapsed", s.state.ClockElapsed)
}

// HandleClockTick runs one wall-clock check and returns the report of the
// turn it fired, or nil.
func (s *Session) HandleClockTick(now time.Time) *TurnReport {
	var report *TurnReport
	s.clock.Tick(now, s.state, func(state *GameState) {
		r := s.processor.Process(state)
		report = &r
	})
	if report == nil {
		return nil
	}

	s.logger.Info("turn processed",
		"turn", report.Turn,
		"clock_elapsed", report.ClockElapsed,
		"encounter", report.Encounter.Hit,
	)
	for _, o := range s.observers {
		o.TurnProcessed(*report)
	}
	return report
}

// Reset replaces the state with a fresh one and stops the clock.
func (s *Session) Reset() {
	s.state = NewGameStateWith(s.defaults)
	s.clock = NewScheduler(s.now())
	s.logger.Info("session reset")
}

// Replace swaps in a loaded state. The clock keeps its running state, but
// wall time that passed before the swap is not credited to the loaded game.
func (s *Session) Replace(state *GameState) {
	s.state = state
	s.clock.Resync(s.now())
	s.logger.Info("state replaced", "turn", state.Turn, "clock_elapsed", state.ClockElapsed)
}

// ForceEncounter draws from the encounter table without rolling the d6.
func (s *Session) ForceEncounter() EncounterResult {
	result := s.processor.RollEncounter(s.state, true)
	s.notifyEncounter(result)
	return result
}

// RollEncounter makes a normal encounter check outside the turn pipeline.
func (s *Session) RollEncounter() EncounterResult {
	result := s.processor.RollEncounter(s.state, false)
	s.notifyEncounter(result)
	return result
}

func (s *Session) notifyEncounter(result EncounterResult) {
	for _, o := range s.observers {
		if eo, ok := o.(EncounterObserver); ok {
			eo.EncounterRolled(result)
		}
	}
}

// RollAmbientEvent draws and logs one ambient event into the current turn.
func (s *Session) RollAmbientEvent() (string, bool) {
	return s.processor.RollAmbientEvent(s.state)
}

// AddLight appends a light source. The label must not be blank.
func (s *Session) AddLight(light LightSource) error {
	if strings.TrimSpace(light.Label) == "" {
		return oops.Code("INVALID_LIGHT").Errorf("light source needs a label")
	}
	if light.Kind.IsSpell() && strings.TrimSpace(light.Kind.Spell) == "" {
		return oops.Code("INVALID_LIGHT").With("label", light.Label).Errorf("spell light needs a spell name")
	}
	s.state.LightSources = append(s.state.LightSources, light)
	s.logger.Debug("light added", "label", light.Label, "kind", light.Kind.String())
	return nil
}

// AddDraftLight adds a light built from the state's new-light draft fields
// and resets the draft.
func (s *Session) AddDraftLight() error {
	st := s.state
	err := s.AddLight(LightSource{
		Label:            st.NewLightLabel,
		Kind:             st.NewLightType,
		RadiusFeet:       st.NewLightRange,
		MinutesRemaining: st.NewLightMinutes,
	})
	if err != nil {
		return err
	}
	st.NewLightLabel = ""
	st.NewLightRange = draftResetRange
	st.NewLightType = Torch()
	return nil
}

// UpdateLight applies update to the light at index.
func (s *Session) UpdateLight(index int, update func(*LightSource)) error {
	if index < 0 || index >= len(s.state.LightSources) {
		return errLightNotFound(index)
	}
	update(&s.state.LightSources[index])
	return nil
}

// RemoveLight deletes the light at index.
func (s *Session) RemoveLight(index int) (LightSource, error) {
	if index < 0 || index >= len(s.state.LightSources) {
		return LightSource{}, errLightNotFound(index)
	}
	removed := s.state.LightSources[index]
	s.state.LightSources = append(s.state.LightSources[:index], s.state.LightSources[index+1:]...)
	return removed, nil
}

func errLightNotFound(index int) error {
	return oops.Code("LIGHT_NOT_FOUND").With("index", index).Errorf("no light source at position %d", index+1)
}

func (s *Session) table(t Table) (*[]string, error) {
	switch t {
	case TableEncounters:
		return &s.state.EncounterTable, nil
	case TableAmbientEvents:
		return &s.state.AmbientEventTable, nil
	default:
		return nil, oops.Code("UNKNOWN_TABLE").With("table", uint8(t)).Errorf("unknown table")
	}
}

// Entries returns the live entries of a table.
func (s *Session) Entries(t Table) []string {
	tbl, err := s.table(t)
	if err != nil {
		return nil
	}
	return *tbl
}

// AddEntry appends text to a table.
func (s *Session) AddEntry(t Table, text string) error {
	tbl, err := s.table(t)
	if err != nil {
		return err
	}
	*tbl = append(*tbl, text)
	return nil
}

// SetEntry replaces the entry at index.
func (s *Session) SetEntry(t Table, index int, text string) error {
	tbl, err := s.table(t)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*tbl) {
		return errEntryNotFound(t, index)
	}
	(*tbl)[index] = text
	return nil
}

// RemoveEntry deletes the entry at index.
func (s *Session) RemoveEntry(t Table, index int) error {
	tbl, err := s.table(t)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*tbl) {
		return errEntryNotFound(t, index)
	}
	*tbl = append((*tbl)[:index], (*tbl)[index+1:]...)
	return nil
}

// ReplaceTables swaps in new table contents. A nil slice leaves that table as is.
func (s *Session) ReplaceTables(encounters, ambient []string) {
	if encounters != nil {
		s.state.EncounterTable = encounters
	}
	if ambient != nil {
		s.state.AmbientEventTable = ambient
	}
}

func errEntryNotFound(t Table, index int) error {
	return oops.Code("TABLE_ENTRY_NOT_FOUND").
		With("table", t.String()).
		With("index", index).
		Errorf("no %s entry at position %d", t, index+1)
}
