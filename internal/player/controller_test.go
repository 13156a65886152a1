// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/playcore/internal/engine"
	"github.com/ManuGH/playcore/internal/report"
	"github.com/ManuGH/playcore/internal/tracks"
)

type controllerHarness struct {
	c       *Controller
	factory *engine.MockFactory
	clock   *report.ManualClock
	policy  *stubPolicy
}

func newControllerHarness(t *testing.T) *controllerHarness {
	t.Helper()
	h := &controllerHarness{
		factory: engine.NewMockFactory(ladder()),
		clock:   report.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		policy:  &stubPolicy{enabled: true, interval: interval},
	}
	h.c = NewController(Options{
		Factory: h.factory,
		Policy:  h.policy,
		Clock:   h.clock,
		Logger:  zerolog.Nop(),
	})
	t.Cleanup(func() { _ = h.c.Close() })
	return h
}

func (h *controllerHarness) status(t *testing.T) Status {
	t.Helper()
	st, err := h.c.Status()
	require.NoError(t, err)
	return st
}

func TestController_EngineCallbacksFromOtherGoroutines(t *testing.T) {
	h := newControllerHarness(t)
	require.NoError(t, h.c.Prepare(Request{URL: testURL}))

	s := h.factory.Last()
	require.NotNil(t, s)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.EmitTracksChanged()
		s.EmitState(true, engine.PhaseReady)
	}()
	wg.Wait()

	st := h.status(t)
	assert.Equal(t, StatePlaying, st.State.Kind)
	assert.Equal(t, uint64(1), st.Generation)
	assert.True(t, st.Reporting)
	assert.Len(t, st.Catalogs.Quality, 3)
	assert.Equal(t, testURL, st.Request.URL)
	assert.Equal(t, StatePlaying, h.c.States().Get().Kind)
}

func TestController_SelectionsRoundTrip(t *testing.T) {
	h := newControllerHarness(t)
	require.NoError(t, h.c.Prepare(Request{URL: testURL}))
	s := h.factory.Last()
	s.EmitTracksChanged()
	s.EmitState(true, engine.PhaseReady)

	changed, err := h.c.SelectSubtitle(tracks.Descriptor{GroupIndex: 0, TrackIndex: 0})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = h.c.SelectSpeed(2.0)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = h.c.SelectQuality(tracks.Descriptor{GroupIndex: 9, TrackIndex: 9})
	assert.ErrorIs(t, err, ErrUnknownTrack)

	st := h.status(t)
	assert.Equal(t, "English CC", st.Selection.Subtitle().Title)
	assert.Equal(t, 2.0, st.Selection.Speed().Value)
	assert.Equal(t, []int{2}, st.Parameters.Indices())

	require.NoError(t, h.c.RequestSpeedPicker())
	a, ok := h.c.Actions().Take()
	require.True(t, ok)
	assert.Equal(t, ActionShowSpeedPicker, a.Kind)
	assert.Equal(t, "2x", a.Speed.Label)
}

func TestController_ReportingDeliversOffLoop(t *testing.T) {
	h := newControllerHarness(t)
	require.NoError(t, h.c.Prepare(Request{URL: testURL}))
	s := h.factory.Last()
	s.SetPosition(12 * time.Second)
	s.EmitState(true, engine.PhaseReady)
	require.True(t, h.status(t).Reporting)

	h.clock.Advance(interval)
	require.Eventually(t, func() bool { return len(h.policy.Sent()) == 1 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(12_000), h.policy.Sent()[0].PositionMS)

	require.Eventually(t, func() bool { return h.clock.Pending() == 1 },
		time.Second, 5*time.Millisecond, "next tick is scheduled once the first completes")
}

func TestController_SeriousReportFailure(t *testing.T) {
	h := newControllerHarness(t)
	require.NoError(t, h.c.Prepare(Request{URL: testURL}))
	s := h.factory.Last()
	s.EmitState(true, engine.PhaseReady)
	h.policy.fail(errors.New("forbidden"), true)
	require.True(t, h.status(t).Reporting, "scheduler must be armed before the clock moves")

	h.clock.Advance(interval)
	require.Eventually(t, func() bool { return h.c.States().Get().Kind == StateError },
		time.Second, 5*time.Millisecond)
	assert.True(t, s.Released())

	msg, ok := h.c.Messages().Take()
	require.True(t, ok)
	assert.Equal(t, MessageRetry, msg.RetryLabel)
}

func TestController_Close(t *testing.T) {
	h := newControllerHarness(t)
	require.NoError(t, h.c.Prepare(Request{URL: testURL}))
	s := h.factory.Last()

	require.NoError(t, h.c.Close())
	require.NoError(t, h.c.Close())
	assert.True(t, s.Released())

	assert.ErrorIs(t, h.c.Prepare(Request{URL: testURL}), ErrClosed)
	assert.ErrorIs(t, h.c.Stop(mo.None[time.Duration]()), ErrClosed)
	_, err := h.c.SelectSpeed(1.5)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = h.c.Status()
	assert.ErrorIs(t, err, ErrClosed)

	// Callbacks from a released engine after close are dropped quietly.
	s.EmitState(true, engine.PhaseReady)
}

func TestLoop_RecoversPanics(t *testing.T) {
	l := NewLoop(4, zerolog.Nop())
	l.Start()
	defer l.Stop()

	assert.True(t, l.Do(func() { panic("boom") }))

	ran := false
	assert.True(t, l.Do(func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_StopBeforeStart(t *testing.T) {
	l := NewLoop(0, zerolog.Nop())
	l.Stop()
	assert.False(t, l.Post(func() {}))
	assert.False(t, l.Do(func() {}))
}
