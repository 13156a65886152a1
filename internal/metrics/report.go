// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report results.
const (
	ReportOK      = "ok"
	ReportIgnored = "ignored"
	ReportSerious = "serious"
	ReportSkipped = "skipped"
)

var (
	reportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_total",
		Help:      "Playback progress reports by sink and result",
	}, []string{"sink", "result"})

	reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_duration_seconds",
		Help:      "Time spent delivering one progress report",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"sink"})
)

// RecordReport counts one heartbeat outcome.
func RecordReport(sink, result string, d time.Duration) {
	if sink == "" {
		sink = "none"
	}
	reportsTotal.WithLabelValues(sink, result).Inc()
	if result != ReportSkipped {
		reportDuration.WithLabelValues(sink).Observe(d.Seconds())
	}
}
