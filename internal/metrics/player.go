// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics holds the Prometheus collectors of the player core.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "playcore"

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_transitions_total",
		Help:      "Player state transitions by source and target state",
	}, []string{"from", "to"})

	illegalTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "illegal_transitions_total",
		Help:      "Rejected player events by state and event",
	}, []string{"state", "event"})

	staleCallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_callbacks_total",
		Help:      "Engine callbacks dropped because they belong to a released session",
	}, []string{"callback"})

	engineErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "engine_errors_total",
		Help:      "Engine errors by engine error type and recovery class",
	}, []string{"type", "class"})

	sessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "engine_sessions_created_total",
		Help:      "Engine sessions created",
	})

	currentState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "player_state",
		Help:      "1 for the current player state, 0 otherwise",
	}, []string{"state"})
)

// RecordTransition counts a state change and moves the state gauge.
func RecordTransition(from, to string) {
	from, to = normalizeState(from), normalizeState(to)
	transitionsTotal.WithLabelValues(from, to).Inc()
	if from != to {
		currentState.WithLabelValues(from).Set(0)
	}
	currentState.WithLabelValues(to).Set(1)
}

// RecordIllegalTransition counts a rejected event.
func RecordIllegalTransition(state, event string) {
	illegalTransitionsTotal.WithLabelValues(normalizeState(state), event).Inc()
}

// IncStaleCallback counts a dropped engine callback.
func IncStaleCallback(callback string) {
	staleCallbacksTotal.WithLabelValues(callback).Inc()
}

// RecordEngineError counts an engine error after classification.
func RecordEngineError(errType, class string) {
	if errType == "" {
		errType = "unknown"
	}
	engineErrorsTotal.WithLabelValues(errType, class).Inc()
}

// IncSessionsCreated counts a new engine session.
func IncSessionsCreated() {
	sessionsCreatedTotal.Inc()
}

func normalizeState(s string) string {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "idle", "fetching", "preparing", "playing", "paused", "done", "error":
		return v
	default:
		return "unknown"
	}
}
