// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package report

import (
	"time"
)

// Scheduler runs tick at a fixed delay between the end of one tick and the
// start of the next. It is owned by a single goroutine: Start, Stop and tick
// all run there, and timer callbacks are marshalled onto it through post.
type Scheduler struct {
	clock    Clock
	interval func() time.Duration
	post     func(func())
	tick     func()

	running bool
	epoch   uint64
	timer   Timer
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(clock Clock, interval func() time.Duration, post func(func()), tick func()) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock, interval: interval, post: post, tick: tick}
}

// Start schedules the first tick after one interval. No-op when running.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.epoch++
	s.schedule()
}

// Stop cancels the pending tick. No-op when stopped.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.epoch++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Running reports whether a tick is scheduled.
func (s *Scheduler) Running() bool { return s.running }

func (s *Scheduler) schedule() {
	epoch := s.epoch
	s.timer = s.clock.AfterFunc(s.interval(), func() {
		s.post(func() { s.fire(epoch) })
	})
}

func (s *Scheduler) fire(epoch uint64) {
	// A tick that was already queued when Stop ran carries an old epoch.
	if !s.running || epoch != s.epoch {
		return
	}
	s.timer = nil
	s.tick()
	if s.running && epoch == s.epoch {
		s.schedule()
	}
}
