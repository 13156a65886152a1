// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import "errors"

var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrUnknownTrack      = errors.New("unknown track")
	ErrUnknownSpeed      = errors.New("unknown playback speed")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrClosed            = errors.New("player closed")
)
