// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package tracks

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// QualityCatalog lists the video qualities, AutoQuality first and the rest
// ordered by descending width. Ties keep engine order.
// It returns nil when the snapshot has no video renderer.
func QualityCatalog(s Snapshot) []Descriptor {
	var found []Descriptor
	ok := visitHandled(s, KindVideo, func(f Format, gi, ti int) {
		found = append(found, Descriptor{
			Kind:       Quality,
			Title:      strconv.Itoa(f.Height) + "p",
			Width:      f.Width,
			Height:     f.Height,
			Bitrate:    f.Bitrate,
			GroupIndex: gi,
			TrackIndex: ti,
		})
	})
	if !ok {
		return nil
	}
	slices.SortStableFunc(found, func(a, b Descriptor) int {
		return cmp.Compare(b.Width, a.Width)
	})
	return append([]Descriptor{AutoQuality()}, found...)
}

// AudioCatalog lists the handled audio tracks in engine order.
// It returns nil when the snapshot has no audio renderer.
func AudioCatalog(s Snapshot) []Descriptor {
	var out []Descriptor
	ok := visitHandled(s, KindAudio, func(f Format, gi, ti int) {
		out = append(out, labelled(Audio, f, gi, ti))
	})
	if !ok {
		return nil
	}
	if out == nil {
		out = []Descriptor{}
	}
	return out
}

// SubtitleCatalog lists the handled text tracks followed by NoSubtitle.
// Exactly one entry is flagged default: the engine's default subtitle if it
// declared one, otherwise NoSubtitle. Each call recomputes from scratch.
// It returns nil when the snapshot has no text renderer.
func SubtitleCatalog(s Snapshot) []Descriptor {
	var out []Descriptor
	ok := visitHandled(s, KindText, func(f Format, gi, ti int) {
		out = append(out, labelled(Subtitle, f, gi, ti))
	})
	if !ok {
		return nil
	}

	// Engines may flag several text tracks as default; keep the first.
	seen := false
	for i := range out {
		if out[i].Default {
			if seen {
				out[i].Default = false
			}
			seen = true
		}
	}

	off := NoSubtitle()
	off.Default = !lo.ContainsBy(out, func(d Descriptor) bool { return d.Default })
	return append(out, off)
}

func labelled(kind DescriptorKind, f Format, gi, ti int) Descriptor {
	return Descriptor{
		Kind:       kind,
		Title:      trackLabel(f),
		Language:   f.Language,
		Bitrate:    f.Bitrate,
		Default:    f.IsDefault(),
		GroupIndex: gi,
		TrackIndex: ti,
	}
}

func trackLabel(f Format) string {
	if f.Label != "" {
		return f.Label
	}
	if f.Language == "" {
		return ""
	}
	tag, err := language.Parse(f.Language)
	if err != nil {
		return ""
	}
	return display.English.Languages().Name(tag)
}

// Catalogs bundles everything a picker UI needs for one snapshot.
type Catalogs struct {
	AspectRatio mo.Option[float64]
	Quality     []Descriptor
	Audio       []Descriptor
	Subtitle    []Descriptor
}

// BuildCatalogs derives all catalogs and the video aspect ratio from s.
func BuildCatalogs(s Snapshot) Catalogs {
	return Catalogs{
		AspectRatio: aspectRatio(s),
		Quality:     QualityCatalog(s),
		Audio:       AudioCatalog(s),
		Subtitle:    SubtitleCatalog(s),
	}
}

// Lookup finds the catalog entry with the same identity as d.
func (c Catalogs) Lookup(d Descriptor) (Descriptor, bool) {
	var list []Descriptor
	switch d.Kind {
	case Quality:
		list = c.Quality
	case Audio:
		list = c.Audio
	case Subtitle:
		list = c.Subtitle
	}
	return lo.Find(list, func(e Descriptor) bool { return e.SameAs(d) })
}

// aspectRatio uses the widest handled video format.
func aspectRatio(s Snapshot) mo.Option[float64] {
	var best Format
	visitHandled(s, KindVideo, func(f Format, _, _ int) {
		if f.Width > best.Width && f.Height > 0 {
			best = f
		}
	})
	if best.Width == 0 || best.Height == 0 {
		return mo.None[float64]()
	}
	return mo.Some(float64(best.Width) / float64(best.Height))
}
