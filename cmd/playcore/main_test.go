// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/playcore/internal/config"
	"github.com/ManuGH/playcore/internal/report"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestClassify(t *testing.T) {
	out, err := run(t, "classify",
		"https://cdn.example/live/index.m3u8",
		"https://cdn.example/dash/manifest.mpd",
		"https://cdn.example/movie.mp4",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `index\.m3u8\s+hls\s+supported`, lines[1])
	assert.Regexp(t, `manifest\.mpd\s+dash\s+unsupported`, lines[2])
	assert.Regexp(t, `movie\.mp4\s+progressive\s+supported`, lines[3])
}

func TestClassify_RequiresArgs(t *testing.T) {
	_, err := run(t, "classify")
	assert.Error(t, err)
}

func TestTracks_Builtin(t *testing.T) {
	out, err := run(t, "tracks", "vod")
	require.NoError(t, err)
	assert.Contains(t, out, "aspect ratio: 1.778")
	assert.Regexp(t, `quality\s+Auto\s+-1--1\s+true`, out)
	assert.Contains(t, out, "German")
	assert.Regexp(t, `subtitle\s+Off\s+-1--1\s+true`, out)
}

func TestTracks_UnknownScenario(t *testing.T) {
	_, err := run(t, "tracks", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vod")
}

func TestLoadScenario_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: custom\nduration: 10s\nsteps:\n  - {after: 1s, phase: ready}\n"), 0o600))

	sc, err := loadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", sc.Name)
	assert.Equal(t, 10*time.Second, sc.Duration)
}

func TestApplyUpdates(t *testing.T) {
	policy := report.NewSinkPolicy(report.NewLogSink(zerolog.Nop()), time.Minute, nil)
	updates := make(chan config.Config, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		applyUpdates(ctx, updates, policy, zerolog.Nop())
	}()

	cfg := config.Defaults()
	cfg.Reporting.Interval = 5 * time.Second
	cfg.Reporting.Enabled = true
	updates <- cfg

	require.Eventually(t, func() bool { return policy.Interval() == 5*time.Second }, time.Second, 10*time.Millisecond)
	assert.True(t, policy.NeedsReporting())
	cancel()
	<-done
}
