// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package tracks turns engine track metadata into selectable catalogs and
// turns user picks back into per-renderer override directives.
package tracks

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the media kind a renderer handles.
type Kind int

const (
	KindUnknown Kind = iota
	KindVideo
	KindAudio
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// UnmarshalYAML accepts the lower-case kind name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "video":
		*k = KindVideo
	case "audio":
		*k = KindAudio
	case "text", "subtitle":
		*k = KindText
	case "", "unknown":
		*k = KindUnknown
	default:
		return fmt.Errorf("unknown renderer kind %q", node.Value)
	}
	return nil
}

// Support reports whether a renderer can play a format.
type Support int

const (
	SupportUnsupportedType Support = iota
	SupportUnsupportedSubtype
	SupportExceedsCapabilities
	SupportHandled
)

func (s Support) String() string {
	switch s {
	case SupportHandled:
		return "handled"
	case SupportExceedsCapabilities:
		return "exceeds_capabilities"
	case SupportUnsupportedSubtype:
		return "unsupported_subtype"
	default:
		return "unsupported_type"
	}
}

// UnmarshalYAML accepts the names produced by String.
func (s *Support) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "handled":
		*s = SupportHandled
	case "exceeds_capabilities":
		*s = SupportExceedsCapabilities
	case "unsupported_subtype":
		*s = SupportUnsupportedSubtype
	case "unsupported_type", "":
		*s = SupportUnsupportedType
	default:
		return fmt.Errorf("unknown format support %q", node.Value)
	}
	return nil
}

// Selection flags carried by a format.
const (
	FlagDefault    = 1 << 0
	FlagForced     = 1 << 1
	FlagAutoSelect = 1 << 2
)

// Format is one entry inside a track group.
type Format struct {
	ID             string  `yaml:"id"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Bitrate        int     `yaml:"bitrate"`
	Label          string  `yaml:"label"`
	Language       string  `yaml:"language"`
	SelectionFlags int     `yaml:"selection_flags"`
	Support        Support `yaml:"support"`
}

// IsDefault reports whether the engine flagged the format as the default pick.
func (f Format) IsDefault() bool {
	return f.SelectionFlags&FlagDefault != 0
}

// Group is an ordered set of interchangeable formats.
type Group struct {
	Formats []Format `yaml:"formats"`
}

// Renderer is one engine pipeline and the groups it can be fed from.
type Renderer struct {
	Kind   Kind    `yaml:"kind"`
	Groups []Group `yaml:"groups"`
}

// Snapshot is the engine-reported track metadata at one point in time.
type Snapshot struct {
	Renderers []Renderer `yaml:"renderers"`
}

// ParseSnapshot decodes a YAML snapshot fixture.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parse track snapshot: %w", err)
	}
	return s, nil
}

// RendererIndex returns the first renderer of kind that has at least one group.
// Indices are only meaningful for the snapshot they came from.
func RendererIndex(s Snapshot, kind Kind) (int, bool) {
	for i, r := range s.Renderers {
		if r.Kind == kind && len(r.Groups) != 0 {
			return i, true
		}
	}
	return -1, false
}

// visitHandled calls fn for every handled format of the renderer serving kind.
// It returns false when no such renderer exists.
func visitHandled(s Snapshot, kind Kind, fn func(f Format, group, track int)) bool {
	idx, ok := RendererIndex(s, kind)
	if !ok {
		return false
	}
	for gi, g := range s.Renderers[idx].Groups {
		for ti, f := range g.Formats {
			if f.Support == SupportHandled {
				fn(f, gi, ti)
			}
		}
	}
	return true
}
