// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import (
	"sync"
	"time"

	"github.com/samber/mo"

	"github.com/ManuGH/playcore/internal/observe"
	"github.com/ManuGH/playcore/internal/tracks"
)

// Status is a consistent snapshot of a player.
type Status struct {
	State        State
	Request      Request
	SessionID    string
	Generation   uint64
	Reporting    bool
	LastPosition mo.Option[time.Duration]
	Selection    tracks.Selection
	Catalogs     tracks.Catalogs
	Parameters   tracks.Parameters
}

// Controller serializes host calls and engine callbacks onto one owner
// goroutine that holds the Machine.
type Controller struct {
	loop      *Loop
	m         *Machine
	closeOnce sync.Once
}

// NewController creates a Machine and starts its owner goroutine.
// opts.Post is replaced by the controller's loop.
func NewController(opts Options) *Controller {
	loop := NewLoop(defaultQueueSize, opts.Logger)
	opts.Post = func(f func()) { loop.Post(f) }
	c := &Controller{loop: loop, m: NewMachine(opts)}
	loop.Start()
	return c
}

func (c *Controller) call(f func() error) error {
	var err error
	if !c.loop.Do(func() { err = f() }) {
		return ErrClosed
	}
	return err
}

func (c *Controller) selectCall(f func() (bool, error)) (bool, error) {
	var (
		changed bool
		err     error
	)
	if !c.loop.Do(func() { changed, err = f() }) {
		return false, ErrClosed
	}
	return changed, err
}

func (c *Controller) Prepare(req Request) error {
	return c.call(func() error { return c.m.Prepare(req) })
}

func (c *Controller) Fetch() error { return c.call(c.m.Fetch) }

func (c *Controller) ComingSoon(message string) error {
	return c.call(func() error { return c.m.ComingSoon(message) })
}

func (c *Controller) FetchFailed(message string) error {
	return c.call(func() error { return c.m.FetchFailed(message) })
}

func (c *Controller) Stop(position mo.Option[time.Duration]) error {
	return c.call(func() error { return c.m.Stop(position) })
}

func (c *Controller) Start() error { return c.call(c.m.Start) }

func (c *Controller) Replay() error { return c.call(c.m.Replay) }

func (c *Controller) ToggleFullScreen() error {
	return c.call(func() error { c.m.ToggleFullScreen(); return nil })
}

func (c *Controller) RequestQualityPicker() error {
	return c.call(func() error { c.m.RequestQualityPicker(); return nil })
}

func (c *Controller) RequestSpeedPicker() error {
	return c.call(func() error { c.m.RequestSpeedPicker(); return nil })
}

func (c *Controller) SetControllerVisible(visible bool) error {
	return c.call(func() error { c.m.SetControllerVisible(visible); return nil })
}

func (c *Controller) SelectSpeed(rate float64) (bool, error) {
	return c.selectCall(func() (bool, error) { return c.m.SelectSpeed(rate) })
}

func (c *Controller) SelectQuality(d tracks.Descriptor) (bool, error) {
	return c.selectCall(func() (bool, error) { return c.m.SelectQuality(d) })
}

func (c *Controller) SelectAudio(d tracks.Descriptor) (bool, error) {
	return c.selectCall(func() (bool, error) { return c.m.SelectAudio(d) })
}

func (c *Controller) SelectSubtitle(d tracks.Descriptor) (bool, error) {
	return c.selectCall(func() (bool, error) { return c.m.SelectSubtitle(d) })
}

// Status waits for queued work and returns a snapshot.
func (c *Controller) Status() (Status, error) {
	var st Status
	err := c.call(func() error {
		st = Status{
			State:        c.m.State(),
			Request:      c.m.Request(),
			SessionID:    c.m.SessionID(),
			Generation:   c.m.Generation(),
			Reporting:    c.m.ReportingActive(),
			LastPosition: c.m.LastPosition(),
			Selection:    c.m.Selection(),
			Catalogs:     c.m.Catalogs(),
			Parameters:   c.m.Parameters(),
		}
		return nil
	})
	return st, err
}

// Projections, States, Actions and Messages are safe for concurrent use.

func (c *Controller) Projections() *Projections { return c.m.Projections() }

func (c *Controller) States() *observe.Value[State] { return c.m.States() }

func (c *Controller) Actions() *observe.OneShot[Action] { return c.m.Actions() }

func (c *Controller) Messages() *observe.OneShot[Message] { return c.m.Messages() }

// Close stops reporting, releases the engine session and ends the loop.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.loop.Do(c.m.Shutdown)
		c.loop.Stop()
		c.m.Wait()
	})
	return nil
}
