// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package recovery

// ReportClass is the decision for a failed progress report.
type ReportClass int

const (
	// ReportIgnored failures are logged and the heartbeat keeps running.
	ReportIgnored ReportClass = iota
	// ReportSerious failures are escalated to a fatal playback error.
	ReportSerious
)

func (c ReportClass) String() string {
	if c == ReportSerious {
		return "serious"
	}
	return "ignored"
}

// SeriousnessJudge is the part of a reporting policy that rates failures.
type SeriousnessJudge interface {
	IsSeriousError(err error) bool
}

// ClassifyReport maps a heartbeat failure through the policy.
func ClassifyReport(j SeriousnessJudge, err error) ReportClass {
	if err == nil || j == nil {
		return ReportIgnored
	}
	if j.IsSeriousError(err) {
		return ReportSerious
	}
	return ReportIgnored
}
