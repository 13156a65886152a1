// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package tracks

import "github.com/samber/mo"

// Selection holds the four single-choice slots of a player.
// Every Select method reports whether the slot actually changed; callers
// must skip engine calls when it did not.
type Selection struct {
	speed    SpeedOption
	quality  Descriptor
	audio    mo.Option[Descriptor]
	subtitle Descriptor
}

// NewSelection returns the defaults: 1.0x, auto quality, no audio pick, subtitles off.
func NewSelection() Selection {
	return Selection{
		speed:    DefaultSpeed(),
		quality:  AutoQuality(),
		audio:    mo.None[Descriptor](),
		subtitle: NoSubtitle(),
	}
}

func (s Selection) Speed() SpeedOption           { return s.speed }
func (s Selection) Quality() Descriptor          { return s.quality }
func (s Selection) Audio() mo.Option[Descriptor] { return s.audio }
func (s Selection) Subtitle() Descriptor         { return s.subtitle }

// SelectSpeed sets the speed slot.
func (s *Selection) SelectSpeed(o SpeedOption) bool {
	if s.speed.Value == o.Value {
		return false
	}
	s.speed = o
	return true
}

// SelectQuality sets the quality slot.
func (s *Selection) SelectQuality(d Descriptor) bool {
	if s.quality.SameAs(d) {
		return false
	}
	s.quality = d
	return true
}

// SelectAudio sets the audio slot.
func (s *Selection) SelectAudio(d Descriptor) bool {
	if cur, ok := s.audio.Get(); ok && cur.SameAs(d) {
		return false
	}
	s.audio = mo.Some(d)
	return true
}

// SelectSubtitle sets the subtitle slot.
func (s *Selection) SelectSubtitle(d Descriptor) bool {
	if s.subtitle.SameAs(d) {
		return false
	}
	s.subtitle = d
	return true
}

// ResetTracks returns the track slots to their defaults. Speed is kept.
func (s *Selection) ResetTracks() {
	s.quality = AutoQuality()
	s.audio = mo.None[Descriptor]()
	s.subtitle = NoSubtitle()
}
