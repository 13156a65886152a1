// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package sim

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	xlog "github.com/ManuGH/playcore/internal/log"
	"github.com/ManuGH/playcore/internal/engine"
	"github.com/ManuGH/playcore/internal/media"
	"github.com/ManuGH/playcore/internal/report"
	"github.com/ManuGH/playcore/internal/tracks"
)

var (
	ErrReleased        = errors.New("sim: engine released")
	ErrAlreadyPrepared = errors.New("sim: already prepared")
)

// Options configures sessions created by NewFactory.
type Options struct {
	Clock  report.Clock
	Logger zerolog.Logger
}

// NewFactory returns a factory whose sessions play sc.
func NewFactory(sc Scenario, opts Options) engine.Factory {
	if opts.Clock == nil {
		opts.Clock = report.SystemClock{}
	}
	return engine.FactoryFunc(func(l engine.Listener) (engine.Engine, error) {
		return New(sc, l, opts), nil
	})
}

// Engine replays a Scenario. Listener callbacks are always delivered through
// the clock, never from inside an Engine method.
type Engine struct {
	sc       Scenario
	listener engine.Listener
	clock    report.Clock
	logger   zerolog.Logger

	mu            sync.Mutex
	timers        []report.Timer
	src           media.Source
	prepared      bool
	released      bool
	playWhenReady bool
	phase         engine.Phase
	speed         float64
	base          time.Duration
	anchor        time.Time
	params        tracks.Parameters
}

// New creates an idle session bound to l.
func New(sc Scenario, l engine.Listener, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = report.SystemClock{}
	}
	return &Engine{
		sc:       sc,
		listener: l,
		clock:    opts.Clock,
		logger:   opts.Logger.With().Str(xlog.FieldComponent, "sim").Logger(),
		phase:    engine.PhaseIdle,
		speed:    1.0,
	}
}

func (e *Engine) Prepare(src media.Source) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return ErrReleased
	}
	if e.prepared {
		return ErrAlreadyPrepared
	}
	e.prepared = true
	e.src = src
	e.setPhaseLocked(engine.PhaseBuffering)

	for _, st := range e.sc.Steps {
		e.scheduleLocked(st.After, e.stepFunc(st))
	}
	e.logger.Debug().
		Str(xlog.FieldURL, src.Locator).
		Str(xlog.FieldMediaType, string(src.Type)).
		Int("steps", len(e.sc.Steps)).
		Msg("scenario started")
	return nil
}

func (e *Engine) stepFunc(st Step) func() {
	return func() {
		e.mu.Lock()
		if e.released {
			e.mu.Unlock()
			return
		}
		switch {
		case st.Error != nil:
			e.mu.Unlock()
			e.listener.OnError(st.Error.Err())
		case st.TracksChanged:
			e.mu.Unlock()
			e.listener.OnTracksChanged()
		default:
			phase, _ := ParsePhase(st.Phase)
			e.setPhaseLocked(phase)
			play := e.playWhenReady
			e.mu.Unlock()
			e.listener.OnStateChanged(play, phase)
		}
	}
}

func (e *Engine) SetPlayWhenReady(play bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playWhenReady == play {
		return
	}
	e.settleLocked()
	e.playWhenReady = play
	if e.released || e.phase != engine.PhaseReady {
		return
	}
	phase := e.phase
	e.scheduleLocked(0, func() { e.notifyState(play, phase) })
}

func (e *Engine) notifyState(play bool, phase engine.Phase) {
	e.mu.Lock()
	released := e.released
	e.mu.Unlock()
	if !released {
		e.listener.OnStateChanged(play, phase)
	}
}

func (e *Engine) SeekTo(position time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.base = e.clampLocked(position)
	e.anchor = e.clock.Now()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settleLocked()
	e.stopTimersLocked()
	e.setPhaseLocked(engine.PhaseIdle)
}

func (e *Engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimersLocked()
	e.released = true
}

func (e *Engine) CurrentPosition() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionLocked()
}

func (e *Engine) CurrentTracks() tracks.Snapshot {
	return e.sc.Tracks
}

func (e *Engine) SetParameterOverride(rendererIndex int, params tracks.RendererParams) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = e.params.With(rendererIndex, params)
	e.logger.Debug().
		Int(xlog.FieldRenderer, rendererIndex).
		Bool("disabled", params.Disabled).
		Bool("pinned", params.Override != nil).
		Msg("renderer override applied")
}

func (e *Engine) SetPlaybackSpeed(rate float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settleLocked()
	e.speed = rate
}

// Parameters returns the overrides applied so far.
func (e *Engine) Parameters() tracks.Parameters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// Source returns the prepared source.
func (e *Engine) Source() media.Source {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

// Released reports whether Release was called.
func (e *Engine) Released() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.released
}

func (e *Engine) scheduleLocked(d time.Duration, f func()) {
	e.timers = append(e.timers, e.clock.AfterFunc(d, f))
}

func (e *Engine) stopTimersLocked() {
	for _, t := range e.timers {
		t.Stop()
	}
	e.timers = nil
}

func (e *Engine) setPhaseLocked(p engine.Phase) {
	e.settleLocked()
	e.phase = p
}

func (e *Engine) advancing() bool {
	return e.playWhenReady && e.phase == engine.PhaseReady
}

// settleLocked folds elapsed playback into base so the clock can be re-anchored.
func (e *Engine) settleLocked() {
	e.base = e.positionLocked()
	e.anchor = e.clock.Now()
}

func (e *Engine) positionLocked() time.Duration {
	pos := e.base
	if e.advancing() && !e.anchor.IsZero() {
		elapsed := e.clock.Now().Sub(e.anchor)
		pos += time.Duration(float64(elapsed) * e.speed)
	}
	return e.clampLocked(pos)
}

func (e *Engine) clampLocked(pos time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if e.sc.Duration > 0 && pos > e.sc.Duration {
		return e.sc.Duration
	}
	return pos
}
