// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package sim

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/playcore/internal/engine"
	"github.com/ManuGH/playcore/internal/media"
	"github.com/ManuGH/playcore/internal/recovery"
	"github.com/ManuGH/playcore/internal/report"
	"github.com/ManuGH/playcore/internal/tracks"
)

type recorder struct {
	mu     sync.Mutex
	events []string
	errs   []error
	last   engine.Phase
}

func (r *recorder) OnStateChanged(play bool, phase engine.Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = phase
	if play {
		r.events = append(r.events, phase.String()+"+play")
		return
	}
	r.events = append(r.events, phase.String())
}

func (r *recorder) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "error")
	r.errs = append(r.errs, err)
}

func (r *recorder) OnTracksChanged() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "tracks")
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func newClock() *report.ManualClock {
	return report.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func hlsSource() media.Source {
	return media.Source{Locator: "https://cdn.example/vod/movie.m3u8", Type: media.TypeHLS}
}

func TestBuiltinScenarios(t *testing.T) {
	names := BuiltinNames()
	assert.Equal(t, []string{"broken", "live", "vod"}, names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			sc, err := Builtin(name)
			require.NoError(t, err)
			assert.Equal(t, name, sc.Name)
			assert.NotEmpty(t, sc.Steps)
		})
	}

	_, err := Builtin("missing")
	assert.Error(t, err)
}

func TestParseScenario_Validation(t *testing.T) {
	_, err := LoadScenario("testdata/bad_step.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1: offsets must not decrease")
	assert.Contains(t, err.Error(), `unknown phase "warp"`)
	assert.Contains(t, err.Error(), "step 2: exactly one of")

	_, err = ParseScenario([]byte("name: x\nbogus: 1\n"))
	assert.ErrorContains(t, err, "field bogus not found")

	sc, err := ParseScenario(nil)
	require.NoError(t, err)
	assert.Empty(t, sc.Steps)
}

func TestEngine_PlaysScenario(t *testing.T) {
	sc, err := Builtin("vod")
	require.NoError(t, err)
	clock := newClock()
	rec := &recorder{}
	e := New(sc, rec, Options{Clock: clock, Logger: zerolog.Nop()})

	require.NoError(t, e.Prepare(hlsSource()))
	assert.ErrorIs(t, e.Prepare(hlsSource()), ErrAlreadyPrepared)
	e.SetPlayWhenReady(true)
	assert.Empty(t, rec.Events(), "callbacks are never synchronous")

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"tracks", "ready+play"}, rec.Events())
	assert.Len(t, e.CurrentTracks().Renderers, 3)

	clock.Advance(10 * time.Second)
	assert.Equal(t, 10*time.Second, e.CurrentPosition())

	e.SetPlaybackSpeed(2.0)
	clock.Advance(5 * time.Second)
	assert.Equal(t, 20*time.Second, e.CurrentPosition())

	e.SetPlayWhenReady(false)
	clock.Advance(0)
	assert.Equal(t, "ready", rec.Events()[len(rec.Events())-1])
	clock.Advance(5 * time.Second)
	assert.Equal(t, 20*time.Second, e.CurrentPosition(), "paused position does not move")

	e.SeekTo(time.Hour)
	assert.Equal(t, 2*time.Minute, e.CurrentPosition(), "seek is clamped to duration")

	clock.Advance(2 * time.Minute)
	assert.Equal(t, "ended", rec.Events()[len(rec.Events())-1])
}

func TestEngine_PrepareLogsLocator(t *testing.T) {
	sc, err := Builtin("vod")
	require.NoError(t, err)
	var buf bytes.Buffer
	e := New(sc, &recorder{}, Options{Clock: newClock(), Logger: zerolog.New(&buf)})

	require.NoError(t, e.Prepare(hlsSource()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scenario started", entry["message"])
	assert.Equal(t, "https://cdn.example/vod/movie.m3u8", entry["url"])
	assert.Equal(t, "hls", entry["media_type"])
}

func TestEngine_LiveWindowError(t *testing.T) {
	sc, err := Builtin("live")
	require.NoError(t, err)
	clock := newClock()
	rec := &recorder{}
	e := New(sc, rec, Options{Clock: clock})
	require.NoError(t, e.Prepare(hlsSource()))

	clock.Advance(30 * time.Second)
	require.Len(t, rec.errs, 1)
	assert.Equal(t, recovery.RecoverableLiveWindow, recovery.Classify(rec.errs[0]))
	assert.True(t, errors.Is(rec.errs[0], engine.ErrBehindLiveWindow))
}

func TestEngine_BrokenScenarioIsFatal(t *testing.T) {
	sc, err := Builtin("broken")
	require.NoError(t, err)
	clock := newClock()
	rec := &recorder{}
	e := New(sc, rec, Options{Clock: clock})
	require.NoError(t, e.Prepare(hlsSource()))

	clock.Advance(time.Second)
	require.Len(t, rec.errs, 1)
	assert.Equal(t, recovery.Fatal, recovery.Classify(rec.errs[0]))

	var ee *engine.Error
	require.ErrorAs(t, rec.errs[0], &ee)
	assert.Equal(t, engine.TypeRenderer, ee.Type)
}

func TestEngine_ReleaseSilencesCallbacks(t *testing.T) {
	sc, err := Builtin("vod")
	require.NoError(t, err)
	clock := newClock()
	rec := &recorder{}
	e := New(sc, rec, Options{Clock: clock})
	require.NoError(t, e.Prepare(hlsSource()))

	e.SetPlayWhenReady(false)
	e.Stop()
	e.Release()
	assert.True(t, e.Released())
	assert.Zero(t, clock.Pending())

	clock.Advance(5 * time.Minute)
	assert.Empty(t, rec.Events())
	assert.ErrorIs(t, e.Prepare(hlsSource()), ErrReleased)
}

func TestEngine_ParameterOverrides(t *testing.T) {
	e := New(Scenario{}, &recorder{}, Options{Clock: newClock()})

	e.SetParameterOverride(0, tracks.RendererParams{Override: &tracks.Override{GroupIndex: 0, TrackIndex: 2}})
	e.SetParameterOverride(2, tracks.RendererParams{Disabled: true})
	e.SetParameterOverride(0, tracks.RendererParams{})

	assert.Equal(t, []int{2}, e.Parameters().Indices())
	assert.True(t, e.Parameters().Renderer(2).Disabled)
}

func TestNewFactory(t *testing.T) {
	sc, err := Builtin("vod")
	require.NoError(t, err)
	f := NewFactory(sc, Options{Clock: newClock()})

	a, err := f.NewSession(&recorder{})
	require.NoError(t, err)
	b, err := f.NewSession(&recorder{})
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}
