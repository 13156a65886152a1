// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

const (
	ForbiddenOutOfOrder       = "out_of_order"
	ForbiddenAlreadyInState   = "already_in_state"
	ForbiddenRequiresSession  = "requires_session"
	ForbiddenRequiresFetching = "requires_fetching"
	ForbiddenRequiresPlayback = "requires_playback"
	ForbiddenRequiresDone     = "requires_done"
)

// Decision records whether an event is accepted in a state and why not.
// Noop decisions are accepted but change nothing.
type Decision struct {
	Allowed bool
	Noop    bool
	Reason  string
}

func allowed() Decision        { return Decision{Allowed: true} }
func noop() Decision           { return Decision{Allowed: true, Noop: true} }
func forbid(r string) Decision { return Decision{Reason: r} }

// decisionTable defines an explicit decision for every State×Event combination.
var decisionTable = map[StateKind]map[EventKind]Decision{
	StateIdle: {
		EvPrepare:        allowed(),
		EvFetch:          allowed(),
		EvComingSoon:     forbid(ForbiddenRequiresFetching),
		EvFetchFailed:    forbid(ForbiddenRequiresFetching),
		EvReadyPlaying:   forbid(ForbiddenRequiresSession),
		EvReadyPaused:    forbid(ForbiddenRequiresSession),
		EvEnded:          forbid(ForbiddenRequiresSession),
		EvLiveWindowLost: forbid(ForbiddenRequiresSession),
		EvFatalError:     forbid(ForbiddenRequiresSession),
		EvReportFailed:   forbid(ForbiddenRequiresSession),
		EvStop:           forbid(ForbiddenRequiresPlayback),
		EvResume:         noop(),
		EvReplay:         forbid(ForbiddenRequiresDone),
	},
	StateFetching: {
		EvPrepare:        allowed(),
		EvFetch:          forbid(ForbiddenAlreadyInState),
		EvComingSoon:     allowed(),
		EvFetchFailed:    allowed(),
		EvReadyPlaying:   forbid(ForbiddenRequiresSession),
		EvReadyPaused:    forbid(ForbiddenRequiresSession),
		EvEnded:          forbid(ForbiddenRequiresSession),
		EvLiveWindowLost: forbid(ForbiddenRequiresSession),
		EvFatalError:     forbid(ForbiddenRequiresSession),
		EvReportFailed:   forbid(ForbiddenRequiresSession),
		EvStop:           forbid(ForbiddenRequiresPlayback),
		EvResume:         noop(),
		EvReplay:         forbid(ForbiddenRequiresDone),
	},
	StatePreparing: {
		EvPrepare:        forbid(ForbiddenOutOfOrder),
		EvFetch:          forbid(ForbiddenOutOfOrder),
		EvComingSoon:     forbid(ForbiddenRequiresFetching),
		EvFetchFailed:    forbid(ForbiddenRequiresFetching),
		EvReadyPlaying:   allowed(),
		EvReadyPaused:    allowed(),
		EvEnded:          forbid(ForbiddenOutOfOrder),
		EvLiveWindowLost: allowed(),
		EvFatalError:     allowed(),
		EvReportFailed:   allowed(),
		EvStop:           allowed(),
		EvResume:         noop(),
		EvReplay:         forbid(ForbiddenRequiresDone),
	},
	StatePlaying: {
		EvPrepare:        forbid(ForbiddenOutOfOrder),
		EvFetch:          forbid(ForbiddenOutOfOrder),
		EvComingSoon:     forbid(ForbiddenRequiresFetching),
		EvFetchFailed:    forbid(ForbiddenRequiresFetching),
		EvReadyPlaying:   noop(),
		EvReadyPaused:    allowed(),
		EvEnded:          allowed(),
		EvLiveWindowLost: allowed(),
		EvFatalError:     allowed(),
		EvReportFailed:   allowed(),
		EvStop:           allowed(),
		EvResume:         noop(),
		EvReplay:         forbid(ForbiddenRequiresDone),
	},
	StatePaused: {
		EvPrepare:        allowed(),
		EvFetch:          allowed(),
		EvComingSoon:     forbid(ForbiddenRequiresFetching),
		EvFetchFailed:    forbid(ForbiddenRequiresFetching),
		EvReadyPlaying:   allowed(),
		EvReadyPaused:    noop(),
		EvEnded:          allowed(),
		EvLiveWindowLost: allowed(),
		EvFatalError:     allowed(),
		EvReportFailed:   allowed(),
		EvStop:           noop(),
		EvResume:         allowed(),
		EvReplay:         forbid(ForbiddenRequiresDone),
	},
	StateDone: {
		EvPrepare:        allowed(),
		EvFetch:          allowed(),
		EvComingSoon:     forbid(ForbiddenRequiresFetching),
		EvFetchFailed:    forbid(ForbiddenRequiresFetching),
		EvReadyPlaying:   forbid(ForbiddenOutOfOrder),
		EvReadyPaused:    forbid(ForbiddenOutOfOrder),
		EvEnded:          forbid(ForbiddenAlreadyInState),
		EvLiveWindowLost: forbid(ForbiddenOutOfOrder),
		EvFatalError:     forbid(ForbiddenOutOfOrder),
		EvReportFailed:   forbid(ForbiddenOutOfOrder),
		EvStop:           forbid(ForbiddenRequiresPlayback),
		EvResume:         noop(),
		EvReplay:         allowed(),
	},
	StateError: {
		EvPrepare:        allowed(),
		EvFetch:          allowed(),
		EvComingSoon:     forbid(ForbiddenRequiresFetching),
		EvFetchFailed:    forbid(ForbiddenRequiresFetching),
		EvReadyPlaying:   forbid(ForbiddenRequiresSession),
		EvReadyPaused:    forbid(ForbiddenRequiresSession),
		EvEnded:          forbid(ForbiddenRequiresSession),
		EvLiveWindowLost: forbid(ForbiddenRequiresSession),
		EvFatalError:     forbid(ForbiddenAlreadyInState),
		EvReportFailed:   forbid(ForbiddenAlreadyInState),
		EvStop:           forbid(ForbiddenRequiresPlayback),
		EvResume:         noop(),
		EvReplay:         forbid(ForbiddenRequiresDone),
	},
}

// DecisionFor returns the decision for a given state+event.
func DecisionFor(from StateKind, ev EventKind) (Decision, bool) {
	row, ok := decisionTable[from]
	if !ok {
		return Decision{}, false
	}
	d, ok := row[ev]
	return d, ok
}
