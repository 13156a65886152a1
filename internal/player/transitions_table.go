// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

// Transition is a single allowed edge in the playback state machine.
type Transition struct {
	From      StateKind
	To        StateKind
	Event     EventKind
	ErrorKind ErrorKind
}

var transitionsTable = []Transition{
	// Prepare path
	{From: StateIdle, To: StatePreparing, Event: EvPrepare},
	{From: StateFetching, To: StatePreparing, Event: EvPrepare},
	{From: StatePaused, To: StatePreparing, Event: EvPrepare},
	{From: StateDone, To: StatePreparing, Event: EvPrepare},
	{From: StateError, To: StatePreparing, Event: EvPrepare},

	// Metadata fetch
	{From: StateIdle, To: StateFetching, Event: EvFetch},
	{From: StatePaused, To: StateFetching, Event: EvFetch},
	{From: StateDone, To: StateFetching, Event: EvFetch},
	{From: StateError, To: StateFetching, Event: EvFetch},
	{From: StateFetching, To: StateError, Event: EvComingSoon, ErrorKind: ErrorComingSoon},
	{From: StateFetching, To: StateError, Event: EvFetchFailed, ErrorKind: ErrorPlaying},

	// Engine readiness
	{From: StatePreparing, To: StatePlaying, Event: EvReadyPlaying},
	{From: StatePaused, To: StatePlaying, Event: EvReadyPlaying},
	{From: StatePreparing, To: StatePaused, Event: EvReadyPaused},
	{From: StatePlaying, To: StatePaused, Event: EvReadyPaused},
	{From: StatePlaying, To: StateDone, Event: EvEnded},
	{From: StatePaused, To: StateDone, Event: EvEnded},

	// Recovery
	{From: StatePlaying, To: StatePreparing, Event: EvLiveWindowLost},
	{From: StatePreparing, To: StatePreparing, Event: EvLiveWindowLost},
	{From: StatePaused, To: StatePreparing, Event: EvLiveWindowLost},

	// Failures
	{From: StatePlaying, To: StateError, Event: EvFatalError, ErrorKind: ErrorPlaying},
	{From: StatePreparing, To: StateError, Event: EvFatalError, ErrorKind: ErrorPlaying},
	{From: StatePaused, To: StateError, Event: EvFatalError, ErrorKind: ErrorPlaying},
	{From: StatePlaying, To: StateError, Event: EvReportFailed, ErrorKind: ErrorPlaying},
	{From: StatePreparing, To: StateError, Event: EvReportFailed, ErrorKind: ErrorPlaying},
	{From: StatePaused, To: StateError, Event: EvReportFailed, ErrorKind: ErrorPlaying},

	// Host lifecycle
	{From: StatePlaying, To: StatePaused, Event: EvStop},
	{From: StatePreparing, To: StatePaused, Event: EvStop},
	{From: StatePaused, To: StatePreparing, Event: EvResume},
	{From: StateDone, To: StatePreparing, Event: EvReplay},
}

// TransitionFor returns the allowed transition for a given state+event.
func TransitionFor(from StateKind, ev EventKind) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev {
			return tr, true
		}
	}
	return Transition{}, false
}
