// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

// EventKind is an input to the state machine.
type EventKind int

const (
	EvUnknown EventKind = iota
	EvPrepare
	EvFetch
	EvComingSoon
	EvFetchFailed
	EvReadyPlaying
	EvReadyPaused
	EvEnded
	EvLiveWindowLost
	EvFatalError
	EvReportFailed
	EvStop
	EvResume
	EvReplay
)

var eventNames = map[EventKind]string{
	EvUnknown:        "unknown",
	EvPrepare:        "prepare",
	EvFetch:          "fetch",
	EvComingSoon:     "coming_soon",
	EvFetchFailed:    "fetch_failed",
	EvReadyPlaying:   "ready_playing",
	EvReadyPaused:    "ready_paused",
	EvEnded:          "ended",
	EvLiveWindowLost: "live_window_lost",
	EvFatalError:     "fatal_error",
	EvReportFailed:   "report_failed",
	EvStop:           "stop",
	EvResume:         "resume",
	EvReplay:         "replay",
}

func (e EventKind) String() string {
	if n, ok := eventNames[e]; ok {
		return n
	}
	return "unknown"
}

// Event carries the payload of an input.
type Event struct {
	Kind    EventKind
	Request Request // EvPrepare
	Message string  // error events
	Err     error   // error events
}
