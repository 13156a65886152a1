// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import (
	"fmt"
	"time"

	"github.com/samber/mo"
)

// StateKind names the active playback state.
type StateKind int

const (
	StateIdle StateKind = iota
	StateFetching
	StatePreparing
	StatePlaying
	StatePaused
	StateDone
	StateError
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StatePreparing:
		return "preparing"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Variant tells on-demand playback from a live stream.
type Variant int

const (
	VariantVideoFile Variant = iota
	VariantLive
)

func (v Variant) String() string {
	if v == VariantLive {
		return "live"
	}
	return "video_file"
}

// ErrorKind qualifies StateError.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorPlaying
	ErrorComingSoon
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorPlaying:
		return "playing"
	case ErrorComingSoon:
		return "coming_soon"
	default:
		return "none"
	}
}

// State is the playback state. Only the fields of the active Kind are set:
// URL and Resume for Preparing, Variant for Playing, ErrorKind and Message for Error.
type State struct {
	Kind      StateKind
	URL       string
	Resume    mo.Option[time.Duration]
	Variant   Variant
	ErrorKind ErrorKind
	Message   string
}

func (s State) String() string {
	switch s.Kind {
	case StatePlaying:
		return fmt.Sprintf("playing(%s)", s.Variant)
	case StateError:
		return fmt.Sprintf("error(%s)", s.ErrorKind)
	default:
		return s.Kind.String()
	}
}

// Request describes what the host wants to play.
type Request struct {
	URL    string
	Resume mo.Option[time.Duration]
	// Live selects the Live playing variant. Live playback is never reported.
	Live bool
	// TimeShift marks content that can be resumed at a captured position.
	TimeShift bool
}

// Default user-visible messages.
const (
	MessagePlaybackFailed = "An error occurred while playing the video"
	MessageComingSoon     = "This content is coming soon"
	MessageRetry          = "Retry"
)
