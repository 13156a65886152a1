// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"net/http"
	"time"

	"github.com/ManuGH/playcore/internal/report"
	"github.com/ManuGH/playcore/internal/telemetry"
)

// Defaults returns the configuration used when neither file nor environment set a key.
func Defaults() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Player: PlayerConfig{
			UserAgent:      "playcore",
			SupportedTypes: []string{"hls", "progressive"},
			ReportTimeout:  10 * time.Second,
			Scenario:       "vod",
		},
		Reporting: ReportingConfig{
			Enabled:         true,
			Interval:        30 * time.Second,
			Sink:            report.SinkLog,
			SeriousStatuses: []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusGone},
			HTTP: HTTPSinkConfig{
				Timeout:   5 * time.Second,
				RateLimit: 2,
				Burst:     4,
			},
			Redis: RedisSinkConfig{
				Addr: "127.0.0.1:6379",
				Key:  "playcore:progress",
				TTL:  24 * time.Hour,
			},
		},
		API: APIConfig{
			Listen:    ":8088",
			RateLimit: 120,
		},
		Telemetry: TelemetryConfig{
			ServiceName:  "playcore",
			Exporter:     telemetry.ExporterGRPC,
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}
