// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package tracks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOverride_Pin(t *testing.T) {
	d := Descriptor{Kind: Quality, GroupIndex: 0, TrackIndex: 3}

	params, dir := ResolveOverride(Parameters{}, d, 0)
	assert.Equal(t, 0, dir.RendererIndex)
	assert.False(t, dir.Params.Disabled)
	require.NotNil(t, dir.Params.Override)
	assert.Equal(t, Override{GroupIndex: 0, TrackIndex: 3}, *dir.Params.Override)
	assert.Equal(t, dir.Params, params.Renderer(0))
}

func TestResolveOverride_AutoQualityClears(t *testing.T) {
	params, _ := ResolveOverride(Parameters{}, Descriptor{Kind: Quality, GroupIndex: 0, TrackIndex: 1}, 0)

	params, dir := ResolveOverride(params, AutoQuality(), 0)
	assert.Nil(t, dir.Params.Override)
	assert.False(t, dir.Params.Disabled)
	assert.Empty(t, params.Indices())
}

func TestResolveOverride_NoSubtitleDisables(t *testing.T) {
	params, _ := ResolveOverride(Parameters{}, Descriptor{Kind: Subtitle, GroupIndex: 1, TrackIndex: 0}, 2)

	params, dir := ResolveOverride(params, NoSubtitle(), 2)
	assert.True(t, dir.Params.Disabled)
	assert.Nil(t, dir.Params.Override)
	assert.True(t, params.Renderer(2).Disabled)

	// Picking a real subtitle re-enables the renderer.
	params, dir = ResolveOverride(params, Descriptor{Kind: Subtitle, GroupIndex: 0, TrackIndex: 0}, 2)
	assert.False(t, dir.Params.Disabled)
	assert.False(t, params.Renderer(2).Disabled)
}

func TestResolveOverride_RenderersDoNotClobber(t *testing.T) {
	base := Parameters{}
	withQuality, _ := ResolveOverride(base, Descriptor{Kind: Quality, GroupIndex: 0, TrackIndex: 2}, 0)
	withAudio, _ := ResolveOverride(withQuality, Descriptor{Kind: Audio, GroupIndex: 1, TrackIndex: 0}, 1)
	withSubs, _ := ResolveOverride(withAudio, NoSubtitle(), 2)

	assert.Equal(t, []int{0, 1, 2}, withSubs.Indices())
	assert.Equal(t, 2, withSubs.Renderer(0).Override.TrackIndex)
	assert.Equal(t, 1, withSubs.Renderer(1).Override.GroupIndex)
	assert.True(t, withSubs.Renderer(2).Disabled)

	// Earlier values are untouched.
	assert.Empty(t, base.Indices())
	assert.Equal(t, []int{0}, withQuality.Indices())
}
