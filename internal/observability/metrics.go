// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shadowtrack/shadowtrack/internal/command"
	"github.com/shadowtrack/shadowtrack/internal/core"
)

// commandOutputFailures is a package-level counter so handlers can record
// failed output writes without a Server instance.
var commandOutputFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shadowtrack_command_output_failures_total",
		Help: "Total number of command output write failures by command",
	},
	[]string{"command"},
)

// RecordCommandOutputFailure increments the command output failure counter.
func RecordCommandOutputFailure(command string) {
	commandOutputFailures.WithLabelValues(command).Inc()
}

// Encounter label values.
const (
	TriggerRolled = "rolled"
	TriggerForced = "forced"

	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultEmpty = "empty"

	OutcomeSteady    = "steady"
	OutcomeGuttering = "guttering"
)

// Metrics tracks session activity. It is a core.Observer.
type Metrics struct {
	TurnsTotal            prometheus.Counter
	EncountersTotal       *prometheus.CounterVec
	BurnRollsTotal        *prometheus.CounterVec
	LightMinutesRemaining *prometheus.GaugeVec
	ClockElapsedSeconds   prometheus.Gauge
}

var (
	_ core.Observer          = (*Metrics)(nil)
	_ core.EncounterObserver = (*Metrics)(nil)
)

// NewMetrics creates the session metrics and registers them, together with
// the command metrics, on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TurnsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shadowtrack_turns_total",
			Help: "Total number of turns processed",
		}),
		EncountersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadowtrack_encounters_total",
				Help: "Encounter checks by trigger and result",
			},
			[]string{"trigger", "result"},
		),
		BurnRollsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadowtrack_burn_rolls_total",
				Help: "Light burn rolls by outcome",
			},
			[]string{"outcome"},
		),
		LightMinutesRemaining: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shadowtrack_light_minutes_remaining",
				Help: "Minutes left on each light source after the last turn",
			},
			[]string{"label"},
		),
		ClockElapsedSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shadowtrack_clock_elapsed_seconds",
			Help: "Game clock at the last processed turn",
		}),
	}

	reg.MustRegister(
		m.TurnsTotal,
		m.EncountersTotal,
		m.BurnRollsTotal,
		m.LightMinutesRemaining,
		m.ClockElapsedSeconds,
		commandOutputFailures,
	)
	command.RegisterMetrics(reg)

	return m
}

// TurnProcessed records one turn.
func (m *Metrics) TurnProcessed(report core.TurnReport) {
	m.TurnsTotal.Inc()
	m.ClockElapsedSeconds.Set(float64(report.ClockElapsed))

	m.LightMinutesRemaining.Reset()
	for _, b := range report.Burns {
		outcome := OutcomeSteady
		if b.Guttered() {
			outcome = OutcomeGuttering
		}
		m.BurnRollsTotal.WithLabelValues(outcome).Inc()
		m.LightMinutesRemaining.WithLabelValues(b.Label).Set(float64(b.MinutesRemaining))
	}

	m.recordEncounter(report.Encounter)
}

// EncounterRolled records a manual encounter check.
func (m *Metrics) EncounterRolled(result core.EncounterResult) {
	m.recordEncounter(result)
}

func (m *Metrics) recordEncounter(r core.EncounterResult) {
	trigger := TriggerRolled
	if r.Forced {
		trigger = TriggerForced
	}
	result := ResultMiss
	switch {
	case r.TableEmpty:
		result = ResultEmpty
	case r.Hit:
		result = ResultHit
	}
	m.EncountersTotal.WithLabelValues(trigger, result).Inc()
}
