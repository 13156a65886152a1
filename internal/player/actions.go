// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import (
	"time"

	"github.com/samber/mo"

	"github.com/ManuGH/playcore/internal/tracks"
)

// ActionKind is a one-shot instruction for the host UI.
type ActionKind int

const (
	ActionPreparePlayer ActionKind = iota + 1
	ActionShowQualityPicker
	ActionShowSpeedPicker
	ActionUpdatePlaybackParams
	ActionToggleFullScreen
)

func (k ActionKind) String() string {
	switch k {
	case ActionPreparePlayer:
		return "prepare_player"
	case ActionShowQualityPicker:
		return "show_quality_picker"
	case ActionShowSpeedPicker:
		return "show_speed_picker"
	case ActionUpdatePlaybackParams:
		return "update_playback_params"
	case ActionToggleFullScreen:
		return "toggle_full_screen"
	default:
		return "unknown"
	}
}

// Action is delivered once through the action channel.
type Action struct {
	Kind ActionKind

	// PreparePlayer
	URL    string
	Resume mo.Option[time.Duration]

	// ShowQualityPicker
	Qualities []tracks.Descriptor
	Current   tracks.Descriptor

	// ShowSpeedPicker, UpdatePlaybackParams
	Speed tracks.SpeedOption
}

// Message is a user-visible notice, delivered once.
type Message struct {
	Text      string
	ErrorKind ErrorKind
	// RetryLabel is set when the host should offer a retry button.
	RetryLabel string
}
