// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import (
	"errors"
	"fmt"

	xlog "github.com/ManuGH/playcore/internal/log"
	"github.com/ManuGH/playcore/internal/engine"
	"github.com/ManuGH/playcore/internal/metrics"
	"github.com/ManuGH/playcore/internal/recovery"
)

// sessionListener tags engine callbacks with the generation of the session
// they were registered for and hands them to the owner goroutine.
type sessionListener struct {
	m   *Machine
	gen uint64
}

func (l *sessionListener) OnStateChanged(playWhenReady bool, phase engine.Phase) {
	l.m.post(func() { l.m.engineStateChanged(l.gen, playWhenReady, phase) })
}

func (l *sessionListener) OnError(err error) {
	l.m.post(func() { l.m.engineError(l.gen, err) })
}

func (l *sessionListener) OnTracksChanged() {
	l.m.post(func() { l.m.engineTracksChanged(l.gen) })
}

// current drops callbacks that belong to a released session.
func (m *Machine) current(gen uint64, callback string) bool {
	if m.sess != nil && m.sess.gen == gen {
		return true
	}
	metrics.IncStaleCallback(callback)
	m.logger.Debug().
		Uint64(xlog.FieldGeneration, gen).
		Str("callback", callback).
		Msg("dropping stale engine callback")
	return false
}

func (m *Machine) engineStateChanged(gen uint64, playWhenReady bool, phase engine.Phase) {
	if !m.current(gen, "state_changed") {
		return
	}
	switch phase {
	case engine.PhaseReady:
		m.refreshTracks()
		if playWhenReady {
			_ = m.fire(Event{Kind: EvReadyPlaying})
		} else {
			_ = m.fire(Event{Kind: EvReadyPaused})
		}
	case engine.PhaseEnded:
		_ = m.fire(Event{Kind: EvEnded})
	case engine.PhaseIdle, engine.PhaseBuffering:
	}
}

func (m *Machine) engineError(gen uint64, err error) {
	if !m.current(gen, "error") {
		return
	}
	class := recovery.Classify(err)
	metrics.RecordEngineError(errorType(err), class.String())
	m.failSpan(err, class)

	if class == recovery.RecoverableLiveWindow {
		m.logger.Info().Err(err).Str(xlog.FieldClass, class.String()).Msg("behind live window, re-preparing at live edge")
		_ = m.fire(Event{Kind: EvLiveWindowLost, Err: err})
		return
	}

	m.logger.Error().Err(err).Str(xlog.FieldClass, class.String()).Msg("fatal playback error")
	_ = m.fire(Event{
		Kind:    EvFatalError,
		Err:     fmt.Errorf("%w: %w", recovery.ErrFatalPlayback, err),
		Message: MessagePlaybackFailed,
	})
}

func (m *Machine) engineTracksChanged(gen uint64) {
	if !m.current(gen, "tracks_changed") {
		return
	}
	m.refreshTracks()
	m.logger.Debug().
		Int("qualities", len(m.catalogs.Quality)).
		Int("audio", len(m.catalogs.Audio)).
		Int("subtitles", len(m.catalogs.Subtitle)).
		Msg("track catalogs rebuilt")
}

func errorType(err error) string {
	var ee *engine.Error
	if errors.As(err, &ee) {
		return string(ee.Type)
	}
	return "unknown"
}
