// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package player owns the playback lifecycle, track selection and progress
// reporting of one player instance.
package player

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/mo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	xlog "github.com/ManuGH/playcore/internal/log"
	"github.com/ManuGH/playcore/internal/engine"
	"github.com/ManuGH/playcore/internal/media"
	"github.com/ManuGH/playcore/internal/metrics"
	"github.com/ManuGH/playcore/internal/observe"
	"github.com/ManuGH/playcore/internal/recovery"
	"github.com/ManuGH/playcore/internal/report"
	"github.com/ManuGH/playcore/internal/telemetry"
	"github.com/ManuGH/playcore/internal/tracks"
)

const defaultReportTimeout = 10 * time.Second

// Options configures a Machine.
type Options struct {
	Factory engine.Factory
	Policy  report.Policy
	Clock   report.Clock
	Logger  zerolog.Logger
	Tracer  trace.Tracer

	UserAgent string
	Supported []media.Type

	ReportTimeout time.Duration

	// Post marshals work onto the owner goroutine. Nil runs work inline.
	Post func(func())
	// Go runs a report delivery off the owner goroutine. Nil starts a goroutine.
	Go func(func())
}

type session struct {
	id   string
	gen  uint64
	eng  engine.Engine
	src  media.Source
	span trace.Span
}

// Machine is the playback state machine. It is confined to one owner
// goroutine; use Controller for concurrent access.
type Machine struct {
	factory       engine.Factory
	policy        report.Policy
	clock         report.Clock
	logger        zerolog.Logger
	tracer        trace.Tracer
	userAgent     string
	supported     []media.Type
	reportTimeout time.Duration
	post          func(func())
	spawn         func(func())

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	state        State
	req          Request
	lastPosition mo.Option[time.Duration]
	generation   uint64
	sess         *session

	snapshot  tracks.Snapshot
	catalogs  tracks.Catalogs
	selection tracks.Selection
	params    tracks.Parameters

	scheduler      *report.Scheduler
	reportInFlight bool
	closed         bool

	proj     *Projections
	states   *observe.Value[State]
	actions  *observe.OneShot[Action]
	messages *observe.OneShot[Message]
}

// NewMachine creates a Machine in StateIdle.
func NewMachine(opts Options) *Machine {
	m := &Machine{
		factory:       opts.Factory,
		policy:        opts.Policy,
		clock:         opts.Clock,
		logger:        opts.Logger,
		tracer:        opts.Tracer,
		userAgent:     opts.UserAgent,
		supported:     opts.Supported,
		reportTimeout: opts.ReportTimeout,
		post:          opts.Post,
		spawn:         opts.Go,
		selection:     tracks.NewSelection(),
		proj:          newProjections(),
		states:        observe.NewValue(State{}),
		actions:       observe.NewOneShot[Action](),
		messages:      observe.NewOneShot[Message](),
	}
	if m.policy == nil {
		m.policy = report.Disabled{}
	}
	if m.clock == nil {
		m.clock = report.SystemClock{}
	}
	if m.tracer == nil {
		m.tracer = telemetry.Tracer("playcore/player")
	}
	if m.supported == nil {
		m.supported = media.DefaultSupported
	}
	if m.reportTimeout <= 0 {
		m.reportTimeout = defaultReportTimeout
	}
	if m.post == nil {
		m.post = func(f func()) { f() }
	}
	if m.spawn == nil {
		m.spawn = func(f func()) {
			m.wg.Add(1)
			go func() {
				defer m.wg.Done()
				f()
			}()
		}
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.scheduler = report.NewScheduler(m.clock, m.policy.Interval, m.post, m.reportTick)
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Request returns the content request the machine is working on.
func (m *Machine) Request() Request { return m.req }

// Selection returns the current selection slots.
func (m *Machine) Selection() tracks.Selection { return m.selection }

// Catalogs returns the catalogs of the current engine session.
func (m *Machine) Catalogs() tracks.Catalogs { return m.catalogs }

// Parameters returns the renderer parameters of the current engine session.
func (m *Machine) Parameters() tracks.Parameters { return m.params }

// Generation returns the generation of the live session, or 0.
func (m *Machine) Generation() uint64 {
	if m.sess == nil {
		return 0
	}
	return m.sess.gen
}

// SessionID returns the id of the live session, or "".
func (m *Machine) SessionID() string {
	if m.sess == nil {
		return ""
	}
	return m.sess.id
}

// ReportingActive reports whether the progress heartbeat is scheduled.
func (m *Machine) ReportingActive() bool { return m.scheduler.Running() }

// LastPosition returns the position captured by the last Stop.
func (m *Machine) LastPosition() mo.Option[time.Duration] { return m.lastPosition }

// Projections returns the observable UI values.
func (m *Machine) Projections() *Projections { return m.proj }

// States publishes every state change.
func (m *Machine) States() *observe.Value[State] { return m.states }

// Actions returns the one-shot action channel.
func (m *Machine) Actions() *observe.OneShot[Action] { return m.actions }

// Messages returns the one-shot message channel.
func (m *Machine) Messages() *observe.OneShot[Message] { return m.messages }

// Prepare starts playback of req.
func (m *Machine) Prepare(req Request) error {
	if strings.TrimSpace(req.URL) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidRequest)
	}
	return m.fire(Event{Kind: EvPrepare, Request: req})
}

// Fetch marks that the host is resolving stream metadata.
func (m *Machine) Fetch() error {
	return m.fire(Event{Kind: EvFetch})
}

// ComingSoon ends a fetch with the coming-soon error.
func (m *Machine) ComingSoon(message string) error {
	return m.fire(Event{Kind: EvComingSoon, Message: message})
}

// FetchFailed ends a fetch with a playback error.
func (m *Machine) FetchFailed(message string) error {
	return m.fire(Event{Kind: EvFetchFailed, Message: message})
}

// Stop is called when the host goes away. The engine session is always
// released. For time-shift content the position is kept for Start; when
// position is absent the engine's position is used.
func (m *Machine) Stop(position mo.Option[time.Duration]) error {
	if position.IsAbsent() && m.sess != nil {
		position = mo.Some(m.sess.eng.CurrentPosition())
	}
	m.releaseSession()

	if err := m.fire(Event{Kind: EvStop}); err != nil {
		return err
	}
	if m.req.TimeShift {
		m.lastPosition = position
	} else {
		m.lastPosition = mo.None[time.Duration]()
	}
	return nil
}

// Start is called when the host comes back. It resumes a stopped player and
// is ignored in every other state.
func (m *Machine) Start() error {
	return m.fire(Event{Kind: EvResume})
}

// Replay restarts finished content from the beginning.
func (m *Machine) Replay() error {
	return m.fire(Event{Kind: EvReplay})
}

// ToggleFullScreen asks the host to toggle fullscreen.
func (m *Machine) ToggleFullScreen() {
	m.actions.Push(Action{Kind: ActionToggleFullScreen})
}

// SetControllerVisible records the visibility of the host's playback controls.
func (m *Machine) SetControllerVisible(visible bool) {
	m.proj.ControllerVisible.Set(visible)
}

// Shutdown stops reporting, releases the session and cancels in-flight reports.
// Further calls are no-ops.
func (m *Machine) Shutdown() {
	if m.closed {
		return
	}
	m.closed = true
	m.scheduler.Stop()
	m.releaseSession()
	m.cancel()
}

// Wait blocks until in-flight report deliveries have returned.
func (m *Machine) Wait() { m.wg.Wait() }

func (m *Machine) fire(ev Event) error {
	if m.closed {
		return ErrClosed
	}
	from := m.state
	d, ok := DecisionFor(from.Kind, ev.Kind)
	if ok && d.Allowed && d.Noop {
		return nil
	}
	tr, found := TransitionFor(from.Kind, ev.Kind)
	if !ok || !d.Allowed || !found {
		metrics.RecordIllegalTransition(from.Kind.String(), ev.Kind.String())
		m.logger.Warn().
			Str(xlog.FieldEvent, ev.Kind.String()).
			Str(xlog.FieldOldState, from.String()).
			Str("reason", d.Reason).
			Msg("illegal transition")
		return fmt.Errorf("%w: %s in state %s", ErrIllegalTransition, ev.Kind, from)
	}
	m.apply(from, m.target(tr, ev), ev)
	return nil
}

func (m *Machine) target(tr Transition, ev Event) State {
	switch tr.To {
	case StatePreparing:
		switch ev.Kind {
		case EvPrepare:
			m.req = ev.Request
			m.lastPosition = mo.None[time.Duration]()
			return State{Kind: StatePreparing, URL: m.req.URL, Resume: m.req.Resume}
		case EvResume:
			resume := m.lastPosition
			m.lastPosition = mo.None[time.Duration]()
			return State{Kind: StatePreparing, URL: m.req.URL, Resume: resume}
		default:
			return State{Kind: StatePreparing, URL: m.req.URL}
		}
	case StatePlaying:
		v := VariantVideoFile
		if m.req.Live {
			v = VariantLive
		}
		return State{Kind: StatePlaying, Variant: v}
	case StateError:
		msg := ev.Message
		if msg == "" {
			msg = MessagePlaybackFailed
			if tr.ErrorKind == ErrorComingSoon {
				msg = MessageComingSoon
			}
		}
		return State{Kind: StateError, ErrorKind: tr.ErrorKind, Message: msg}
	default:
		return State{Kind: tr.To}
	}
}

func (m *Machine) apply(from, next State, ev Event) {
	if from.Kind == StatePlaying && next.Kind != StatePlaying {
		m.scheduler.Stop()
	}
	m.setState(from, next, ev)

	switch next.Kind {
	case StatePreparing:
		if err := m.startSession(next.URL, next.Resume); err != nil {
			m.logger.Error().Err(err).Str(xlog.FieldURL, next.URL).Msg("prepare failed")
			_ = m.fire(Event{Kind: EvFatalError, Err: err, Message: MessagePlaybackFailed})
		}
	case StatePlaying:
		if next.Variant == VariantVideoFile && m.policy.NeedsReporting() {
			m.scheduler.Start()
		}
	case StateError:
		m.scheduler.Stop()
		m.releaseSession()
		msg := Message{Text: next.Message, ErrorKind: next.ErrorKind}
		if next.ErrorKind == ErrorPlaying {
			msg.RetryLabel = MessageRetry
		}
		m.messages.Push(msg)
	}
}

func (m *Machine) setState(from, next State, ev Event) {
	m.state = next
	metrics.RecordTransition(from.Kind.String(), next.Kind.String())

	e := m.logger.Info()
	if from.Kind == next.Kind {
		e = m.logger.Debug()
	}
	e.Str(xlog.FieldEvent, ev.Kind.String()).
		Str(xlog.FieldOldState, from.String()).
		Str(xlog.FieldNewState, next.String()).
		Msg("state transition")

	if m.sess != nil {
		m.sess.span.AddEvent("transition", trace.WithAttributes(
			telemetry.TransitionAttributes(from.Kind.String(), next.Kind.String())...))
	}
	m.proj.update(next, m.req.TimeShift)
	// Every accepted transition is published, including re-entries such as
	// Preparing -> Preparing on a live-window re-prepare.
	m.states.Publish(next)
}

// startSession replaces the engine session. Catalogs and track slots belong
// to a session and are reset; speed carries over.
func (m *Machine) startSession(url string, resume mo.Option[time.Duration]) error {
	m.snapshot = tracks.Snapshot{}
	m.catalogs = tracks.Catalogs{}
	m.params = tracks.Parameters{}
	m.selection.ResetTracks()
	m.releaseSession()

	src, err := media.BuildSource(url, m.userAgent, m.supported)
	if err != nil {
		return err
	}

	m.generation++
	gen := m.generation
	eng, err := m.factory.NewSession(&sessionListener{m: m, gen: gen})
	if err != nil {
		return fmt.Errorf("create engine session: %w", err)
	}

	id := uuid.NewString()
	pos, hasResume := resume.Get()
	_, span := m.tracer.Start(m.ctx, "player.session",
		trace.WithAttributes(telemetry.SessionAttributes(id, gen, url, string(src.Type), m.req.Live)...),
		trace.WithAttributes(telemetry.ResumeAttributes(pos, hasResume)...),
	)
	m.sess = &session{id: id, gen: gen, eng: eng, src: src, span: span}
	metrics.IncSessionsCreated()

	m.logger.Info().
		Str(xlog.FieldSessionID, id).
		Uint64(xlog.FieldGeneration, gen).
		Str(xlog.FieldURL, url).
		Str(xlog.FieldMediaType, string(src.Type)).
		Msg("engine session created")

	if err := eng.Prepare(src); err != nil {
		m.releaseSession()
		return fmt.Errorf("prepare source: %w", err)
	}
	if hasResume {
		eng.SeekTo(pos)
	}
	eng.SetPlaybackSpeed(m.selection.Speed().Value)
	eng.SetPlayWhenReady(true)

	m.actions.Push(Action{Kind: ActionPreparePlayer, URL: url, Resume: resume})
	return nil
}

// releaseSession pauses, stops and releases the live session, if any.
func (m *Machine) releaseSession() {
	if m.sess == nil {
		return
	}
	s := m.sess
	m.sess = nil
	s.eng.SetPlayWhenReady(false)
	s.eng.Stop()
	s.eng.Release()
	s.span.End()
	m.logger.Debug().
		Str(xlog.FieldSessionID, s.id).
		Uint64(xlog.FieldGeneration, s.gen).
		Msg("engine session released")
}

func (m *Machine) refreshTracks() {
	if m.sess == nil {
		return
	}
	m.snapshot = m.sess.eng.CurrentTracks()
	m.catalogs = tracks.BuildCatalogs(m.snapshot)
}

func (m *Machine) failSpan(err error, class recovery.Class) {
	if m.sess == nil {
		return
	}
	m.sess.span.RecordError(err)
	m.sess.span.SetAttributes(telemetry.ErrorAttributes(errorType(err), class.String())...)
	if class == recovery.Fatal {
		m.sess.span.SetStatus(codes.Error, err.Error())
	}
}
