// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package engine defines the contract of the external media engine.
package engine

import (
	"time"

	"github.com/ManuGH/playcore/internal/media"
	"github.com/ManuGH/playcore/internal/tracks"
)

// Phase is the engine's own lifecycle phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBuffering
	PhaseReady
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBuffering:
		return "buffering"
	case PhaseReady:
		return "ready"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Engine is one live engine session.
type Engine interface {
	Prepare(src media.Source) error
	SetPlayWhenReady(play bool)
	SeekTo(position time.Duration)
	Stop()
	Release()
	CurrentPosition() time.Duration
	CurrentTracks() tracks.Snapshot
	SetParameterOverride(rendererIndex int, params tracks.RendererParams)
	SetPlaybackSpeed(rate float64)
}

// Listener receives engine callbacks. Implementations must tolerate being
// called from any goroutine.
type Listener interface {
	OnStateChanged(playWhenReady bool, phase Phase)
	OnError(err error)
	OnTracksChanged()
}

// Factory creates engine sessions bound to a listener.
type Factory interface {
	NewSession(l Listener) (Engine, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(l Listener) (Engine, error)

// NewSession calls f.
func (f FactoryFunc) NewSession(l Listener) (Engine, error) { return f(l) }
