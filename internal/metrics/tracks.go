// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var selectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "track_selections_total",
	Help:      "User track and speed selections by kind and whether they changed anything",
}, []string{"kind", "changed"})

// RecordSelection counts a selection. kind is quality, audio, subtitle or speed.
func RecordSelection(kind string, changed bool) {
	c := "false"
	if changed {
		c = "true"
	}
	selectionsTotal.WithLabelValues(kind, c).Inc()
}
