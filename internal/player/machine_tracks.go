// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import (
	"fmt"

	"go.opentelemetry.io/otel/trace"

	xlog "github.com/ManuGH/playcore/internal/log"
	"github.com/ManuGH/playcore/internal/metrics"
	"github.com/ManuGH/playcore/internal/telemetry"
	"github.com/ManuGH/playcore/internal/tracks"
)

// RequestQualityPicker asks the host to show the quality list.
func (m *Machine) RequestQualityPicker() {
	m.actions.Push(Action{
		Kind:      ActionShowQualityPicker,
		Qualities: m.catalogs.Quality,
		Current:   m.selection.Quality(),
	})
}

// RequestSpeedPicker asks the host to show the speed list.
func (m *Machine) RequestSpeedPicker() {
	m.actions.Push(Action{Kind: ActionShowSpeedPicker, Speed: m.selection.Speed()})
}

// SelectSpeed applies a playback rate from the speed table.
func (m *Machine) SelectSpeed(rate float64) (bool, error) {
	opt, ok := tracks.SpeedByValue(rate)
	if !ok {
		return false, fmt.Errorf("%w: %v", ErrUnknownSpeed, rate)
	}
	changed := m.selection.SelectSpeed(opt)
	metrics.RecordSelection("speed", changed)
	if !changed {
		return false, nil
	}
	if m.sess != nil {
		m.sess.eng.SetPlaybackSpeed(opt.Value)
	}
	m.logger.Info().Float64(xlog.FieldSpeed, opt.Value).Msg("playback speed selected")
	m.actions.Push(Action{Kind: ActionUpdatePlaybackParams, Speed: opt})
	return true, nil
}

// SelectQuality pins a video track, or returns to adaptive with AutoQuality.
func (m *Machine) SelectQuality(d tracks.Descriptor) (bool, error) {
	return m.selectTrack(tracks.Quality, d)
}

// SelectAudio pins an audio track.
func (m *Machine) SelectAudio(d tracks.Descriptor) (bool, error) {
	return m.selectTrack(tracks.Audio, d)
}

// SelectSubtitle pins a text track, or disables subtitles with NoSubtitle.
func (m *Machine) SelectSubtitle(d tracks.Descriptor) (bool, error) {
	return m.selectTrack(tracks.Subtitle, d)
}

func (m *Machine) selectTrack(kind tracks.DescriptorKind, d tracks.Descriptor) (bool, error) {
	d.Kind = kind
	resolved, err := m.resolve(d)
	if err != nil {
		return false, err
	}

	var changed bool
	switch kind {
	case tracks.Quality:
		changed = m.selection.SelectQuality(resolved)
	case tracks.Audio:
		changed = m.selection.SelectAudio(resolved)
	case tracks.Subtitle:
		changed = m.selection.SelectSubtitle(resolved)
	}
	metrics.RecordSelection(kind.String(), changed)
	if !changed {
		return false, nil
	}

	idx, ok := tracks.RendererIndex(m.snapshot, kind.RendererKind())
	if !ok || m.sess == nil {
		return true, nil
	}
	params, dir := tracks.ResolveOverride(m.params, resolved, idx)
	m.params = params
	m.sess.eng.SetParameterOverride(dir.RendererIndex, dir.Params)
	m.sess.span.AddEvent("track_selected", trace.WithAttributes(
		telemetry.TrackAttributes(kind.String(), resolved.Key())...))

	m.logger.Info().
		Str("kind", kind.String()).
		Str(xlog.FieldTrackKey, resolved.Key()).
		Int(xlog.FieldRenderer, idx).
		Msg("track selected")
	return true, nil
}

// resolve maps d to the catalog entry of the current session. Sentinels are
// always accepted.
func (m *Machine) resolve(d tracks.Descriptor) (tracks.Descriptor, error) {
	switch {
	case d.Kind == tracks.Quality && d.IsAutoQuality():
		return tracks.AutoQuality(), nil
	case d.Kind == tracks.Subtitle && d.IsNoSubtitle():
		return tracks.NoSubtitle(), nil
	}
	if e, ok := m.catalogs.Lookup(d); ok {
		return e, nil
	}
	return tracks.Descriptor{}, fmt.Errorf("%w: %s %s", ErrUnknownTrack, d.Kind, d.Key())
}
