// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"golang.org/x/time/rate"

	"github.com/ManuGH/playcore/internal/media"
	"github.com/ManuGH/playcore/internal/report"
	"github.com/ManuGH/playcore/internal/telemetry"
)

// MediaTypes converts the supported type names. Unknown names are skipped;
// Validate rejects them earlier.
func (c Config) MediaTypes() []media.Type {
	out := make([]media.Type, 0, len(c.Player.SupportedTypes))
	for _, s := range c.Player.SupportedTypes {
		if t, ok := media.ParseType(s); ok {
			out = append(out, t)
		}
	}
	return out
}

// SinkOptions builds the options for report.NewSink.
func (c Config) SinkOptions() report.SinkOptions {
	r := c.Reporting
	return report.SinkOptions{
		Kind: r.Sink,
		HTTP: report.HTTPOptions{
			Endpoint:  r.HTTP.Endpoint,
			Timeout:   r.HTTP.Timeout,
			UserAgent: c.Player.UserAgent,
			RateLimit: rate.Limit(r.HTTP.RateLimit),
			Burst:     r.HTTP.Burst,
		},
		Redis: report.RedisOptions{
			Addr:     r.Redis.Addr,
			Password: r.Redis.Password,
			DB:       r.Redis.DB,
			Key:      r.Redis.Key,
			TTL:      r.Redis.TTL,
		},
		Path: r.File.Path,
	}
}

// TelemetryConfig builds the tracer provider config.
func (c Config) TelemetryConfig(version string) telemetry.Config {
	t := c.Telemetry
	return telemetry.Config{
		Enabled:        t.Enabled,
		ServiceName:    t.ServiceName,
		ServiceVersion: version,
		ExporterType:   t.Exporter,
		Endpoint:       t.Endpoint,
		SamplingRate:   t.SamplingRate,
	}
}
