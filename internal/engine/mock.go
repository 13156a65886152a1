// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import (
	"sync"
	"time"

	"github.com/ManuGH/playcore/internal/media"
	"github.com/ManuGH/playcore/internal/tracks"
)

// Mock is a test double for Engine. It records every call.
type Mock struct {
	mu sync.Mutex

	listener Listener
	tracks   tracks.Snapshot
	position time.Duration

	prepareErr error

	prepared      []media.Source
	playWhenReady []bool
	seeks         []time.Duration
	overrides     []tracks.Directive
	speeds        []float64
	calls         []string
	released      bool
	stopped       bool
}

// NewMock creates a mock session bound to l.
func NewMock(l Listener) *Mock {
	return &Mock{listener: l}
}

func (m *Mock) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *Mock) Prepare(src media.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("prepare")
	if m.prepareErr != nil {
		return m.prepareErr
	}
	m.prepared = append(m.prepared, src)
	return nil
}

func (m *Mock) SetPlayWhenReady(play bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("play_when_ready")
	m.playWhenReady = append(m.playWhenReady, play)
}

func (m *Mock) SeekTo(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("seek")
	m.seeks = append(m.seeks, position)
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("stop")
	m.stopped = true
}

func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("release")
	m.released = true
}

func (m *Mock) CurrentPosition() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) CurrentTracks() tracks.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracks
}

func (m *Mock) SetParameterOverride(rendererIndex int, params tracks.RendererParams) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("override")
	m.overrides = append(m.overrides, tracks.Directive{RendererIndex: rendererIndex, Params: params})
}

func (m *Mock) SetPlaybackSpeed(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("speed")
	m.speeds = append(m.speeds, rate)
}

// Test helpers

func (m *Mock) SetTracks(s tracks.Snapshot) {
	m.mu.Lock()
	m.tracks = s
	m.mu.Unlock()
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	m.position = d
	m.mu.Unlock()
}

func (m *Mock) SetPrepareError(err error) {
	m.mu.Lock()
	m.prepareErr = err
	m.mu.Unlock()
}

func (m *Mock) Listener() Listener { return m.listener }

func (m *Mock) Prepared() []media.Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]media.Source(nil), m.prepared...)
}

func (m *Mock) Seeks() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seeks...)
}

func (m *Mock) Overrides() []tracks.Directive {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tracks.Directive(nil), m.overrides...)
}

func (m *Mock) Speeds() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.speeds...)
}

func (m *Mock) PlayWhenReady() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bool(nil), m.playWhenReady...)
}

// Calls returns the ordered list of recorded method names.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Mock) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

// Emit helpers drive the bound listener the way a real engine would.

func (m *Mock) EmitState(playWhenReady bool, phase Phase) {
	m.listener.OnStateChanged(playWhenReady, phase)
}

func (m *Mock) EmitError(err error) { m.listener.OnError(err) }

func (m *Mock) EmitTracksChanged() { m.listener.OnTracksChanged() }

// MockFactory hands out Mock sessions and keeps them for inspection.
type MockFactory struct {
	mu       sync.Mutex
	sessions []*Mock
	tracks   tracks.Snapshot
	err      error
}

// NewMockFactory creates a factory whose sessions report snapshot s.
func NewMockFactory(s tracks.Snapshot) *MockFactory {
	return &MockFactory{tracks: s}
}

func (f *MockFactory) NewSession(l Listener) (Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m := NewMock(l)
	m.tracks = f.tracks
	f.sessions = append(f.sessions, m)
	return m, nil
}

// SetError makes subsequent NewSession calls fail.
func (f *MockFactory) SetError(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// Sessions returns every session created so far, oldest first.
func (f *MockFactory) Sessions() []*Mock {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Mock(nil), f.sessions...)
}

// Last returns the newest session or nil.
func (f *MockFactory) Last() *Mock {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sessions) == 0 {
		return nil
	}
	return f.sessions[len(f.sessions)-1]
}

var (
	_ Engine  = (*Mock)(nil)
	_ Factory = (*MockFactory)(nil)
)
