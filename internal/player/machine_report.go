// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package player

import (
	"context"
	"time"

	xlog "github.com/ManuGH/playcore/internal/log"
	"github.com/ManuGH/playcore/internal/metrics"
	"github.com/ManuGH/playcore/internal/recovery"
	"github.com/ManuGH/playcore/internal/report"
)

// reportTick runs on the owner goroutine. Delivery happens elsewhere and the
// outcome is posted back; a tick is skipped while a delivery is in flight.
func (m *Machine) reportTick() {
	if m.sess == nil {
		return
	}
	sink := sinkName(m.policy)
	if m.reportInFlight {
		metrics.RecordReport(sink, metrics.ReportSkipped, 0)
		return
	}

	r := report.Report{
		SessionID:  m.sess.id,
		Generation: m.sess.gen,
		Locator:    m.req.URL,
		PositionMS: m.sess.eng.CurrentPosition().Milliseconds(),
		Speed:      m.selection.Speed().Value,
		At:         m.clock.Now(),
	}
	gen := m.sess.gen
	ctx := xlog.ContextWithSessionID(m.ctx, m.sess.id)
	policy := m.policy
	timeout := m.reportTimeout

	m.reportInFlight = true
	m.spawn(func() {
		start := time.Now()
		sendCtx, cancel := context.WithTimeout(ctx, timeout)
		err := policy.SendReport(sendCtx, r)
		cancel()
		elapsed := time.Since(start)
		m.post(func() { m.reportDone(gen, sink, err, elapsed) })
	})
}

func (m *Machine) reportDone(gen uint64, sink string, err error, elapsed time.Duration) {
	m.reportInFlight = false
	if err == nil {
		metrics.RecordReport(sink, metrics.ReportOK, elapsed)
		return
	}

	class := recovery.ClassifyReport(m.policy, err)
	if class == recovery.ReportIgnored {
		metrics.RecordReport(sink, metrics.ReportIgnored, elapsed)
		m.logger.Warn().Err(err).Uint64(xlog.FieldGeneration, gen).Msg("playback report failed")
		return
	}

	metrics.RecordReport(sink, metrics.ReportSerious, elapsed)
	if m.sess == nil || m.sess.gen != gen {
		return
	}
	m.logger.Error().Err(err).Uint64(xlog.FieldGeneration, gen).Msg("serious playback report failure")
	_ = m.fire(Event{Kind: EvReportFailed, Err: err, Message: MessagePlaybackFailed})
}

type namedSink interface {
	Sink() report.Sink
}

func sinkName(p report.Policy) string {
	if ns, ok := p.(namedSink); ok && ns.Sink() != nil {
		return ns.Sink().Name()
	}
	return "none"
}
