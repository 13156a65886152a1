// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/ManuGH/playcore/internal/player"
	"github.com/ManuGH/playcore/internal/tracks"
)

// PrepareRequest is the body of POST /api/v1/prepare.
type PrepareRequest struct {
	URL       string `json:"url"`
	ResumeMS  *int64 `json:"resume_ms,omitempty"`
	Live      bool   `json:"live"`
	TimeShift bool   `json:"time_shift"`
}

func (p PrepareRequest) toRequest() player.Request {
	req := player.Request{URL: p.URL, Live: p.Live, TimeShift: p.TimeShift}
	if p.ResumeMS != nil {
		req.Resume = mo.Some(msToDuration(*p.ResumeMS))
	}
	return req
}

// maxPositionMS is the largest millisecond position a time.Duration can hold.
const maxPositionMS = math.MaxInt64 / int64(time.Millisecond)

func positionInRange(ms int64) bool { return ms >= 0 && ms <= maxPositionMS }

func msToDuration(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }

// StopRequest is the optional body of POST /api/v1/stop.
type StopRequest struct {
	PositionMS *int64 `json:"position_ms,omitempty"`
}

// MessageRequest carries the text for the fetch outcome endpoints.
type MessageRequest struct {
	Message string `json:"message"`
}

// ControllerRequest is the body of POST /api/v1/controller.
type ControllerRequest struct {
	Visible bool `json:"visible"`
}

// TrackRequest picks a catalog entry. Auto and Off select the quality and
// subtitle sentinels.
type TrackRequest struct {
	GroupIndex int  `json:"group_index"`
	TrackIndex int  `json:"track_index"`
	Auto       bool `json:"auto,omitempty"`
	Off        bool `json:"off,omitempty"`
}

func (t TrackRequest) descriptor(kind tracks.DescriptorKind) tracks.Descriptor {
	switch {
	case kind == tracks.Quality && t.Auto:
		return tracks.AutoQuality()
	case kind == tracks.Subtitle && t.Off:
		return tracks.NoSubtitle()
	}
	return tracks.Descriptor{Kind: kind, GroupIndex: t.GroupIndex, TrackIndex: t.TrackIndex}
}

// SpeedRequest is the body of POST /api/v1/select/speed.
type SpeedRequest struct {
	Rate float64 `json:"rate"`
}

// SelectResponse tells whether a pick changed the slot.
type SelectResponse struct {
	Changed bool `json:"changed"`
}

// StateResponse is the body of GET /api/v1/state.
type StateResponse struct {
	State          string          `json:"state"`
	Variant        string          `json:"variant,omitempty"`
	ErrorKind      string          `json:"error_kind,omitempty"`
	Message        string          `json:"message,omitempty"`
	URL            string          `json:"url,omitempty"`
	SessionID      string          `json:"session_id,omitempty"`
	Generation     uint64          `json:"generation"`
	Reporting      bool            `json:"reporting"`
	LastPositionMS *int64          `json:"last_position_ms,omitempty"`
	Projections    ProjectionsView `json:"projections"`
}

// ProjectionsView mirrors player.Projections.
type ProjectionsView struct {
	Loading           bool `json:"loading"`
	ReplayVisible     bool `json:"replay_visible"`
	ComingSoon        bool `json:"coming_soon"`
	StopPlayer        bool `json:"stop_player"`
	ControllerVisible bool `json:"controller_visible"`
	ControllerEnabled bool `json:"controller_enabled"`
	TimeDisplay       bool `json:"time_display"`
}

func newStateResponse(st player.Status, p *player.Projections) StateResponse {
	resp := StateResponse{
		State:      st.State.Kind.String(),
		URL:        st.Request.URL,
		SessionID:  st.SessionID,
		Generation: st.Generation,
		Reporting:  st.Reporting,
		Projections: ProjectionsView{
			Loading:           p.Loading.Get(),
			ReplayVisible:     p.ReplayVisible.Get(),
			ComingSoon:        p.ComingSoon.Get(),
			StopPlayer:        p.StopPlayer.Get(),
			ControllerVisible: p.ControllerVisible.Get(),
			ControllerEnabled: p.ControllerEnabled.Get(),
			TimeDisplay:       p.TimeDisplay.Get(),
		},
	}
	switch st.State.Kind {
	case player.StatePlaying:
		resp.Variant = st.State.Variant.String()
	case player.StateError:
		resp.ErrorKind = st.State.ErrorKind.String()
		resp.Message = st.State.Message
	}
	if pos, ok := st.LastPosition.Get(); ok {
		resp.LastPositionMS = lo.ToPtr(pos.Milliseconds())
	}
	return resp
}

// TracksResponse is the body of GET /api/v1/tracks.
type TracksResponse struct {
	AspectRatio *float64             `json:"aspect_ratio,omitempty"`
	Quality     []tracks.Descriptor  `json:"quality"`
	Audio       []tracks.Descriptor  `json:"audio"`
	Subtitle    []tracks.Descriptor  `json:"subtitle"`
	Speeds      []tracks.SpeedOption `json:"speeds"`
	Selected    SelectedView         `json:"selected"`
}

// SelectedView is the current content of every selection slot.
type SelectedView struct {
	Quality  tracks.Descriptor  `json:"quality"`
	Audio    *tracks.Descriptor `json:"audio,omitempty"`
	Subtitle tracks.Descriptor  `json:"subtitle"`
	Speed    tracks.SpeedOption `json:"speed"`
}

func newTracksResponse(st player.Status) TracksResponse {
	c := st.Catalogs
	resp := TracksResponse{
		Quality:  lo.Ternary(c.Quality == nil, []tracks.Descriptor{}, c.Quality),
		Audio:    lo.Ternary(c.Audio == nil, []tracks.Descriptor{}, c.Audio),
		Subtitle: lo.Ternary(c.Subtitle == nil, []tracks.Descriptor{}, c.Subtitle),
		Speeds:   tracks.SpeedOptions(),
		Selected: SelectedView{
			Quality:  st.Selection.Quality(),
			Subtitle: st.Selection.Subtitle(),
			Speed:    st.Selection.Speed(),
		},
	}
	if ar, ok := c.AspectRatio.Get(); ok {
		resp.AspectRatio = lo.ToPtr(ar)
	}
	if a, ok := st.Selection.Audio().Get(); ok {
		resp.Selected.Audio = lo.ToPtr(a)
	}
	return resp
}

// ActionView is a delivered player.Action.
type ActionView struct {
	Kind      string               `json:"kind"`
	URL       string               `json:"url,omitempty"`
	ResumeMS  *int64               `json:"resume_ms,omitempty"`
	Qualities []tracks.Descriptor  `json:"qualities,omitempty"`
	Current   *tracks.Descriptor   `json:"current,omitempty"`
	Speeds    []tracks.SpeedOption `json:"speeds,omitempty"`
	Speed     *tracks.SpeedOption  `json:"speed,omitempty"`
}

func newActionView(a player.Action) ActionView {
	v := ActionView{Kind: a.Kind.String()}
	switch a.Kind {
	case player.ActionPreparePlayer:
		v.URL = a.URL
		if d, ok := a.Resume.Get(); ok {
			v.ResumeMS = lo.ToPtr(d.Milliseconds())
		}
	case player.ActionShowQualityPicker:
		v.Qualities = a.Qualities
		v.Current = lo.ToPtr(a.Current)
	case player.ActionShowSpeedPicker:
		v.Speeds = tracks.SpeedOptions()
		v.Speed = lo.ToPtr(a.Speed)
	case player.ActionUpdatePlaybackParams:
		v.Speed = lo.ToPtr(a.Speed)
	}
	return v
}

// MessageView is a delivered player.Message.
type MessageView struct {
	Text       string `json:"text"`
	ErrorKind  string `json:"error_kind"`
	RetryLabel string `json:"retry_label,omitempty"`
}
