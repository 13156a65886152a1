// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package tracks

import (
	"maps"
	"sort"
)

// Override pins a renderer to one group/track pair.
type Override struct {
	GroupIndex int `json:"group_index"`
	TrackIndex int `json:"track_index"`
}

// RendererParams is the selection state of a single renderer.
// A nil Override means the engine picks tracks on its own.
type RendererParams struct {
	Disabled bool      `json:"disabled"`
	Override *Override `json:"override,omitempty"`
}

// Directive is what gets sent to the engine for one renderer.
type Directive struct {
	RendererIndex int
	Params        RendererParams
}

// Parameters is the full per-renderer parameter set of an engine session.
// Values are immutable; every change returns a new copy.
type Parameters struct {
	renderers map[int]RendererParams
}

// Renderer returns the params for index, or the zero value (enabled, no override).
func (p Parameters) Renderer(index int) RendererParams {
	return p.renderers[index]
}

// Indices returns the renderer indices that carry non-default params, sorted.
func (p Parameters) Indices() []int {
	out := make([]int, 0, len(p.renderers))
	for i := range p.renderers {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// With returns a copy of p with index replaced by rp.
func (p Parameters) With(index int, rp RendererParams) Parameters {
	next := make(map[int]RendererParams, len(p.renderers)+1)
	maps.Copy(next, p.renderers)
	if !rp.Disabled && rp.Override == nil {
		delete(next, index)
	} else {
		next[index] = rp
	}
	return Parameters{renderers: next}
}

// ResolveOverride applies a user pick to the renderer at rendererIndex.
//
//   - AutoQuality clears the override and enables the renderer (adaptive switching).
//   - NoSubtitle clears the override and disables the renderer.
//   - Anything else enables the renderer and pins (GroupIndex, TrackIndex).
//
// Other renderers in params are carried over untouched.
func ResolveOverride(params Parameters, selected Descriptor, rendererIndex int) (Parameters, Directive) {
	var rp RendererParams
	switch {
	case selected.IsAutoQuality():
		rp = RendererParams{}
	case selected.IsNoSubtitle():
		rp = RendererParams{Disabled: true}
	default:
		rp = RendererParams{Override: &Override{
			GroupIndex: selected.GroupIndex,
			TrackIndex: selected.TrackIndex,
		}}
	}
	return params.With(rendererIndex, rp), Directive{RendererIndex: rendererIndex, Params: rp}
}
