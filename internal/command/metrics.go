// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package command

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status values for command execution metrics.
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusNotFound    = "not_found"
	StatusInvalidArgs = "invalid_args"
)

// CommandExecutions counts console command executions.
// Use RegisterMetrics to expose it.
var CommandExecutions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shadowtrack_command_executions_total",
		Help: "Total number of console command executions",
	},
	[]string{"command", "status"},
)

// CommandDuration observes console command execution time.
var CommandDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "shadowtrack_command_duration_seconds",
		Help:    "Console command execution duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"command"},
)

// RegisterMetrics registers the command metrics with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(CommandExecutions, CommandDuration)
}

// RecordCommandExecution increments the execution counter.
func RecordCommandExecution(command, status string) {
	CommandExecutions.WithLabelValues(command, status).Inc()
}

// RecordCommandDuration records how long a command took.
func RecordCommandDuration(command string, d time.Duration) {
	CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}
