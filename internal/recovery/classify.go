// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package recovery decides how the player reacts to engine and reporting failures.
package recovery

import (
	"errors"

	"github.com/ManuGH/playcore/internal/engine"
)

// Class is the recovery decision for an engine error.
type Class int

const (
	// Fatal errors land the player in the error state. No retry.
	Fatal Class = iota
	// RecoverableLiveWindow re-prepares the same locator at the live edge.
	RecoverableLiveWindow
)

func (c Class) String() string {
	switch c {
	case RecoverableLiveWindow:
		return "recoverable_live_window"
	default:
		return "fatal"
	}
}

// ErrFatalPlayback wraps every error the player surfaces to the user.
var ErrFatalPlayback = errors.New("fatal playback error")

// Classify inspects err and its causal chain. Only a source error whose chain
// contains engine.ErrBehindLiveWindow is recoverable.
func Classify(err error) Class {
	if err == nil {
		return Fatal
	}
	var ee *engine.Error
	if !errors.As(err, &ee) || ee.Type != engine.TypeSource {
		return Fatal
	}
	if errors.Is(ee, engine.ErrBehindLiveWindow) {
		return RecoverableLiveWindow
	}
	return Fatal
}
