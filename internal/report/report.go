// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package report runs the playback progress heartbeat and delivers reports.
package report

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrReportFailed wraps every error returned by a policy's SendReport.
var ErrReportFailed = errors.New("playback report failed")

// Report is one progress heartbeat.
type Report struct {
	SessionID  string    `json:"session_id"`
	Generation uint64    `json:"generation"`
	Locator    string    `json:"locator"`
	PositionMS int64     `json:"position_ms"`
	Speed      float64   `json:"speed"`
	At         time.Time `json:"at"`
}

// Policy decides whether and how progress is reported.
type Policy interface {
	NeedsReporting() bool
	Interval() time.Duration
	SendReport(ctx context.Context, r Report) error
	IsSeriousError(err error) bool
}

// Disabled never reports.
type Disabled struct{}

func (Disabled) NeedsReporting() bool                     { return false }
func (Disabled) Interval() time.Duration                  { return 0 }
func (Disabled) SendReport(context.Context, Report) error { return nil }
func (Disabled) IsSeriousError(error) bool                { return false }

// Sink delivers a report somewhere.
type Sink interface {
	Send(ctx context.Context, r Report) error
	Name() string
	Close() error
}

// SinkPolicy reports through a Sink at a configurable interval.
type SinkPolicy struct {
	sink     Sink
	enabled  atomic.Bool
	interval atomic.Int64
	serious  atomic.Pointer[map[int]struct{}]
}

// NewSinkPolicy creates an enabled policy. seriousStatuses lists the remote
// status codes that escalate to a fatal playback error.
func NewSinkPolicy(sink Sink, interval time.Duration, seriousStatuses []int) *SinkPolicy {
	p := &SinkPolicy{sink: sink}
	p.enabled.Store(true)
	p.Update(interval, seriousStatuses)
	return p
}

// Update replaces the interval and serious status set. Used by config reload.
func (p *SinkPolicy) Update(interval time.Duration, seriousStatuses []int) {
	p.interval.Store(int64(interval))
	set := make(map[int]struct{}, len(seriousStatuses))
	for _, s := range seriousStatuses {
		set[s] = struct{}{}
	}
	p.serious.Store(&set)
}

// SetEnabled toggles reporting. Takes effect the next time playback starts.
func (p *SinkPolicy) SetEnabled(v bool) { p.enabled.Store(v) }

func (p *SinkPolicy) NeedsReporting() bool { return p.enabled.Load() && p.Interval() > 0 }

func (p *SinkPolicy) Interval() time.Duration { return time.Duration(p.interval.Load()) }

func (p *SinkPolicy) SendReport(ctx context.Context, r Report) error {
	if err := p.sink.Send(ctx, r); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReportFailed, p.sink.Name(), err)
	}
	return nil
}

// IsSeriousError is true for remote status codes in the serious set.
// Transport failures are never serious.
func (p *SinkPolicy) IsSeriousError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	_, ok := (*p.serious.Load())[se.Code]
	return ok
}

// Sink returns the underlying sink.
func (p *SinkPolicy) Sink() Sink { return p.sink }

// StatusError is a non-success answer from a remote report endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("report endpoint returned status %d", e.Code)
	}
	return fmt.Sprintf("report endpoint returned status %d: %s", e.Code, e.Body)
}

var (
	_ Policy = Disabled{}
	_ Policy = (*SinkPolicy)(nil)
)
