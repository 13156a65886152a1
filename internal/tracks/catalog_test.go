// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package tracks

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSnapshot(t *testing.T, name string) Snapshot {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	s, err := ParseSnapshot(data)
	require.NoError(t, err)
	return s
}

func videoOnly(formats ...Format) Snapshot {
	return Snapshot{Renderers: []Renderer{{Kind: KindVideo, Groups: []Group{{Formats: formats}}}}}
}

func TestQualityCatalog_Ladder(t *testing.T) {
	s := loadSnapshot(t, "hls_ladder.yaml")

	got := QualityCatalog(s)
	want := []Descriptor{
		AutoQuality(),
		{Kind: Quality, Title: "1080p", Width: 1920, Height: 1080, Bitrate: 5000000, GroupIndex: 0, TrackIndex: 1},
		{Kind: Quality, Title: "720p", Width: 1280, Height: 720, Bitrate: 2800000, GroupIndex: 0, TrackIndex: 0},
		{Kind: Quality, Title: "720p", Width: 1280, Height: 720, Bitrate: 2200000, GroupIndex: 0, TrackIndex: 4},
		{Kind: Quality, Title: "480p", Width: 854, Height: 480, Bitrate: 1200000, GroupIndex: 0, TrackIndex: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("QualityCatalog mismatch (-want +got):\n%s", diff)
	}
}

func TestQualityCatalog_Properties(t *testing.T) {
	widths := []int{640, 1920, 1280, 1920, 320, 1280, 3840}
	var formats []Format
	for _, w := range widths {
		formats = append(formats, Format{Width: w, Height: w * 9 / 16, Support: SupportHandled})
	}

	got := QualityCatalog(videoOnly(formats...))
	require.Len(t, got, len(widths)+1)
	assert.True(t, got[0].IsAutoQuality())
	assert.Equal(t, math.MaxInt, got[0].Width)

	for i := 2; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		require.GreaterOrEqual(t, prev.Width, cur.Width, "not descending at %d", i)
		if prev.Width == cur.Width {
			assert.Less(t, prev.TrackIndex, cur.TrackIndex, "tie at %d lost engine order", i)
		}
	}
}

func TestQualityCatalog_NoHandledEntries(t *testing.T) {
	got := QualityCatalog(videoOnly(Format{Width: 1920, Height: 1080, Support: SupportExceedsCapabilities}))
	assert.Equal(t, []Descriptor{AutoQuality()}, got)
}

func TestQualityCatalog_NoVideoRenderer(t *testing.T) {
	s := Snapshot{Renderers: []Renderer{{Kind: KindAudio, Groups: []Group{{Formats: []Format{{Support: SupportHandled}}}}}}}
	assert.Nil(t, QualityCatalog(s))

	// A video renderer without groups does not count.
	s.Renderers = append(s.Renderers, Renderer{Kind: KindVideo})
	assert.Nil(t, QualityCatalog(s))
}

func TestAudioCatalog(t *testing.T) {
	s := loadSnapshot(t, "hls_ladder.yaml")

	got := AudioCatalog(s)
	want := []Descriptor{
		{Kind: Audio, Title: "English", Language: "en", Default: true, GroupIndex: 0, TrackIndex: 0},
		{Kind: Audio, Title: "German", Language: "de", GroupIndex: 1, TrackIndex: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AudioCatalog mismatch (-want +got):\n%s", diff)
	}
}

func TestSubtitleCatalog_NoEngineDefault(t *testing.T) {
	s := loadSnapshot(t, "hls_ladder.yaml")

	got := SubtitleCatalog(s)
	require.Len(t, got, 3)
	assert.Equal(t, "English CC", got[0].Title)
	assert.Equal(t, "Español", got[1].Title)
	assert.True(t, got[2].IsNoSubtitle())
	assert.True(t, got[2].Default)
	assertSingleDefault(t, got)
}

func TestSubtitleCatalog_EngineDefaultWins(t *testing.T) {
	s := Snapshot{Renderers: []Renderer{{Kind: KindText, Groups: []Group{{Formats: []Format{
		{Label: "en", Support: SupportHandled},
		{Label: "fr", SelectionFlags: FlagDefault | FlagAutoSelect, Support: SupportHandled},
		{Label: "de", SelectionFlags: FlagDefault, Support: SupportHandled},
	}}}}}}

	got := SubtitleCatalog(s)
	require.Len(t, got, 4)
	assert.True(t, got[1].Default)
	assert.False(t, got[3].Default)
	assertSingleDefault(t, got)

	// Repeated calls must not drift.
	again := SubtitleCatalog(s)
	assert.Equal(t, got, again)
	assert.False(t, NoSubtitle().Default)
}

func TestSubtitleCatalog_EmptyTextRenderer(t *testing.T) {
	s := Snapshot{Renderers: []Renderer{{Kind: KindText, Groups: []Group{{Formats: []Format{
		{Label: "en", Support: SupportUnsupportedType},
	}}}}}}
	got := SubtitleCatalog(s)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsNoSubtitle())
	assert.True(t, got[0].Default)
}

func assertSingleDefault(t *testing.T, list []Descriptor) {
	t.Helper()
	n := 0
	for _, d := range list {
		if d.Default {
			n++
		}
	}
	assert.Equal(t, 1, n, "want exactly one default in %+v", list)
}

func TestRendererIndex(t *testing.T) {
	s := loadSnapshot(t, "hls_ladder.yaml")
	for kind, want := range map[Kind]int{KindVideo: 0, KindAudio: 1, KindText: 2} {
		idx, ok := RendererIndex(s, kind)
		require.True(t, ok)
		assert.Equal(t, want, idx, kind.String())
	}
	_, ok := RendererIndex(Snapshot{}, KindVideo)
	assert.False(t, ok)
}

func TestBuildCatalogs(t *testing.T) {
	c := BuildCatalogs(loadSnapshot(t, "hls_ladder.yaml"))

	ratio, ok := c.AspectRatio.Get()
	require.True(t, ok)
	assert.InDelta(t, 16.0/9.0, ratio, 0.01)
	assert.Len(t, c.Quality, 5)
	assert.Len(t, c.Audio, 2)
	assert.Len(t, c.Subtitle, 3)

	found, ok := c.Lookup(Descriptor{Kind: Audio, GroupIndex: 1, TrackIndex: 0})
	require.True(t, ok)
	assert.Equal(t, "German", found.Title)

	_, ok = c.Lookup(Descriptor{Kind: Audio, GroupIndex: 5, TrackIndex: 0})
	assert.False(t, ok)

	assert.True(t, BuildCatalogs(Snapshot{}).AspectRatio.IsAbsent())
}

func TestParseSnapshot_RejectsUnknownKind(t *testing.T) {
	_, err := ParseSnapshot([]byte("renderers:\n  - kind: hologram\n"))
	assert.Error(t, err)
}
