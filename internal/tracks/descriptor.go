// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package tracks

import (
	"math"
	"strconv"
)

// DescriptorKind tells which picker a descriptor belongs to.
type DescriptorKind int

const (
	Quality DescriptorKind = iota + 1
	Audio
	Subtitle
)

func (k DescriptorKind) String() string {
	switch k {
	case Quality:
		return "quality"
	case Audio:
		return "audio"
	case Subtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// RendererKind maps a picker to the renderer kind it drives.
func (k DescriptorKind) RendererKind() Kind {
	switch k {
	case Quality:
		return KindVideo
	case Audio:
		return KindAudio
	case Subtitle:
		return KindText
	default:
		return KindUnknown
	}
}

// Descriptor is one user-selectable track option.
type Descriptor struct {
	Kind       DescriptorKind `json:"kind"`
	Title      string         `json:"title"`
	Width      int            `json:"width,omitempty"`
	Height     int            `json:"height,omitempty"`
	Bitrate    int            `json:"bitrate,omitempty"`
	Language   string         `json:"language,omitempty"`
	Default    bool           `json:"default"`
	GroupIndex int            `json:"group_index"`
	TrackIndex int            `json:"track_index"`
}

// Key is the identity of the descriptor within one engine session.
func (d Descriptor) Key() string {
	return strconv.Itoa(d.GroupIndex) + "-" + strconv.Itoa(d.TrackIndex)
}

// SameAs reports identity equality: same picker, same group/track pin.
func (d Descriptor) SameAs(o Descriptor) bool {
	return d.Kind == o.Kind && d.GroupIndex == o.GroupIndex && d.TrackIndex == o.TrackIndex
}

func (d Descriptor) isSentinel() bool {
	return d.GroupIndex == -1 && d.TrackIndex == -1
}

// IsAutoQuality reports whether d is the adaptive-quality sentinel.
func (d Descriptor) IsAutoQuality() bool {
	return d.Kind == Quality && d.isSentinel()
}

// IsNoSubtitle reports whether d is the subtitles-off sentinel.
func (d Descriptor) IsNoSubtitle() bool {
	return d.Kind == Subtitle && d.isSentinel()
}

var (
	autoQuality = Descriptor{
		Kind:       Quality,
		Title:      "Auto",
		Width:      math.MaxInt,
		Default:    true,
		GroupIndex: -1,
		TrackIndex: -1,
	}
	noSubtitle = Descriptor{
		Kind:       Subtitle,
		Title:      "Off",
		GroupIndex: -1,
		TrackIndex: -1,
	}
)

// AutoQuality returns the sentinel that restores engine-driven quality switching.
func AutoQuality() Descriptor { return autoQuality }

// NoSubtitle returns the sentinel that turns the text renderer off.
func NoSubtitle() Descriptor { return noSubtitle }
