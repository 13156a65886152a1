// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	allStates = []StateKind{
		StateIdle, StateFetching, StatePreparing, StatePlaying, StatePaused, StateDone, StateError,
	}
	allEvents = []EventKind{
		EvPrepare, EvFetch, EvComingSoon, EvFetchFailed, EvReadyPlaying, EvReadyPaused, EvEnded,
		EvLiveWindowLost, EvFatalError, EvReportFailed, EvStop, EvResume, EvReplay,
	}
)

func TestTransitionTable_Coverage(t *testing.T) {
	edges := map[StateKind]map[EventKind]struct{}{}
	for _, tr := range transitionsTable {
		if _, ok := edges[tr.From]; !ok {
			edges[tr.From] = map[EventKind]struct{}{}
		}
		if _, exists := edges[tr.From][tr.Event]; exists {
			t.Fatalf("duplicate transition: %s + %s", tr.From, tr.Event)
		}
		edges[tr.From][tr.Event] = struct{}{}
	}

	for _, state := range allStates {
		for _, ev := range allEvents {
			decision, ok := DecisionFor(state, ev)
			require.True(t, ok, "missing decision for %s + %s", state, ev)

			if _, ok := edges[state][ev]; ok {
				require.True(t, decision.Allowed, "edge must be allowed for %s + %s", state, ev)
				require.False(t, decision.Noop, "edge must not be a noop for %s + %s", state, ev)
				continue
			}
			if decision.Noop {
				require.True(t, decision.Allowed)
				continue
			}
			require.False(t, decision.Allowed, "missing edge must be forbidden for %s + %s", state, ev)
			require.NotEmpty(t, decision.Reason, "forbidden transition must have reason for %s + %s", state, ev)
		}
	}
}

func TestTransitionTable_ErrorEdgesCarryKind(t *testing.T) {
	for _, tr := range transitionsTable {
		if tr.To == StateError {
			assert.NotEqual(t, ErrorNone, tr.ErrorKind, "%s + %s", tr.From, tr.Event)
		} else {
			assert.Equal(t, ErrorNone, tr.ErrorKind, "%s + %s", tr.From, tr.Event)
		}
	}
}

func TestTransitionTable_NoTerminalState(t *testing.T) {
	for _, state := range allStates {
		var out int
		for _, tr := range transitionsTable {
			if tr.From == state {
				out++
			}
		}
		assert.Positive(t, out, "state %s has no way out", state)
	}
}

func TestDecisionFor_Unknown(t *testing.T) {
	_, ok := DecisionFor(StateKind(99), EvPrepare)
	assert.False(t, ok)
	_, ok = TransitionFor(StateIdle, EvUnknown)
	assert.False(t, ok)
}
