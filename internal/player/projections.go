// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import "github.com/ManuGH/playcore/internal/observe"

// Projections are the derived values a host UI binds to.
type Projections struct {
	Loading           *observe.Value[bool]
	ReplayVisible     *observe.Value[bool]
	ComingSoon        *observe.Value[bool]
	StopPlayer        *observe.Value[bool]
	ControllerVisible *observe.Value[bool]
	ControllerEnabled *observe.Value[bool]
	TimeDisplay       *observe.Value[bool]
}

func newProjections() *Projections {
	return &Projections{
		Loading:           observe.NewValue(false),
		ReplayVisible:     observe.NewValue(false),
		ComingSoon:        observe.NewValue(false),
		StopPlayer:        observe.NewValue(false),
		ControllerVisible: observe.NewValue(false),
		ControllerEnabled: observe.NewValue(false),
		TimeDisplay:       observe.NewValue(false),
	}
}

func (p *Projections) update(s State, timeShift bool) {
	p.Loading.Set(s.Kind == StatePreparing || s.Kind == StateFetching)
	p.ReplayVisible.Set(s.Kind == StateDone)
	p.ComingSoon.Set(s.Kind == StateError && s.ErrorKind == ErrorComingSoon)
	p.StopPlayer.Set(s.Kind == StateError)
	p.ControllerEnabled.Set(s.Kind == StatePlaying || s.Kind == StatePaused || s.Kind == StateDone)
	p.TimeDisplay.Set(timeShift)
}
