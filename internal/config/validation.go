// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"time"

	"github.com/ManuGH/playcore/internal/media"
	"github.com/ManuGH/playcore/internal/report"
	"github.com/ManuGH/playcore/internal/telemetry"
	"github.com/ManuGH/playcore/internal/validate"
)

var sinkKinds = []string{report.SinkLog, report.SinkHTTP, report.SinkRedis, report.SinkFile}

var exporters = []string{telemetry.ExporterGRPC, telemetry.ExporterHTTP, telemetry.ExporterNoop}

// Validate checks every section and reports all failures at once.
func Validate(cfg Config) error {
	v := validate.New()

	if _, err := validate.ParseLogLevel(cfg.Log.Level); err != nil {
		v.AddError("log.level", fmt.Sprintf("must be one of %v", validate.LogLevels), cfg.Log.Level)
	}

	if len(cfg.Player.SupportedTypes) == 0 {
		v.AddError("player.supported_types", "at least one media type is required", cfg.Player.SupportedTypes)
	}
	for _, s := range cfg.Player.SupportedTypes {
		if _, ok := media.ParseType(s); !ok {
			v.AddError("player.supported_types", fmt.Sprintf("unknown media type %q", s), s)
		}
	}
	v.DurationRange("player.report_timeout", cfg.Player.ReportTimeout, 100*time.Millisecond, time.Minute)

	r := cfg.Reporting
	v.OneOf("reporting.sink", r.Sink, sinkKinds)
	if r.Enabled {
		v.DurationRange("reporting.interval", r.Interval, time.Second, time.Hour)
	}
	for _, code := range r.SeriousStatuses {
		v.Range("reporting.serious_statuses", code, 400, 599)
	}
	switch r.Sink {
	case report.SinkHTTP:
		v.URL("reporting.http.endpoint", r.HTTP.Endpoint, []string{"http", "https"})
		v.DurationRange("reporting.http.timeout", r.HTTP.Timeout, 100*time.Millisecond, time.Minute)
		if r.HTTP.RateLimit < 0 {
			v.AddError("reporting.http.rate_limit", "cannot be negative", r.HTTP.RateLimit)
		}
		v.Positive("reporting.http.burst", r.HTTP.Burst)
	case report.SinkRedis:
		v.NotEmpty("reporting.redis.addr", r.Redis.Addr)
		v.NotEmpty("reporting.redis.key", r.Redis.Key)
		v.Range("reporting.redis.db", r.Redis.DB, 0, 15)
	case report.SinkFile:
		v.NotEmpty("reporting.file.path", r.File.Path)
		v.FilePath("reporting.file.path", r.File.Path)
	}

	v.ListenAddr("api.listen", cfg.API.Listen)
	if cfg.API.RateLimit < 0 {
		v.AddError("api.rate_limit", "cannot be negative", cfg.API.RateLimit)
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, exporters)
		if cfg.Telemetry.Exporter != telemetry.ExporterNoop {
			v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		}
	}
	v.Ratio("telemetry.sampling_rate", cfg.Telemetry.SamplingRate)

	return v.Err()
}
