// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

const defaultQueueSize = 256

// Loop runs posted functions one at a time on a single goroutine.
type Loop struct {
	tasks  chan func()
	quit   chan struct{}
	done   chan struct{}
	logger zerolog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewLoop creates a stopped loop.
func NewLoop(queueSize int, logger zerolog.Logger) *Loop {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Loop{
		tasks:  make(chan func(), queueSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Start launches the owner goroutine.
func (l *Loop) Start() {
	l.startOnce.Do(func() { go l.run() })
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.quit:
			return
		case f := <-l.tasks:
			l.exec(f)
		}
	}
}

func (l *Loop) exec(f func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().Str("panic", fmt.Sprint(r)).Msg("player loop task panicked")
		}
	}()
	f()
}

// Post queues f. It returns false once the loop is stopping.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.quit:
		return false
	default:
	}
	select {
	case l.tasks <- f:
		return true
	case <-l.quit:
		return false
	}
}

// Do runs f on the loop and waits for it. Must not be called from the loop.
func (l *Loop) Do(f func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		f()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Stop ends the loop and waits for the running task to return. Queued tasks
// are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.quit)
		l.startOnce.Do(func() { close(l.done) })
	})
	<-l.done
}
