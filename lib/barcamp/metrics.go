// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package barcamp

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts handled commands. A nil *Metrics records nothing.
type Metrics struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the command metrics and registers them with
// registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "barcamp_bot",
				Name:      "commands_total",
				Help:      "Commands handled, by command and outcome.",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "barcamp_bot",
				Name:      "command_duration_seconds",
				Help:      "Time from receiving a command to its final reaction.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
	registerer.MustRegister(metrics.commands, metrics.duration)
	return metrics
}

// outcomeLabel is outcome.String(), or "shutdown" when err carries
// ErrShutdown.
func outcomeLabel(outcome Outcome, err error) string {
	if errors.Is(err, ErrShutdown) {
		return "shutdown"
	}
	return outcome.String()
}

func (m *Metrics) observe(command string, outcome Outcome, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcomeLabel(outcome, err)).Inc()
	m.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}
