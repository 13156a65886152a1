// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads the playcore configuration from YAML and PLAYCORE_*
// environment variables and hot-reloads it.
package config

import "time"

// Config is the full runtime configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Player    PlayerConfig    `yaml:"player"`
	Reporting ReportingConfig `yaml:"reporting"`
	API       APIConfig       `yaml:"api"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// PlayerConfig controls source building and the engine backing the player.
type PlayerConfig struct {
	UserAgent      string        `yaml:"user_agent"`
	SupportedTypes []string      `yaml:"supported_types"`
	ReportTimeout  time.Duration `yaml:"report_timeout"`
	// Scenario is a builtin simulated-engine scenario name or a YAML file path.
	Scenario string `yaml:"scenario"`
}

// ReportingConfig selects the progress sink and its cadence.
type ReportingConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Sink     string        `yaml:"sink"`
	// SeriousStatuses are HTTP status codes that stop playback when a report fails with them.
	SeriousStatuses []int           `yaml:"serious_statuses"`
	HTTP            HTTPSinkConfig  `yaml:"http"`
	Redis           RedisSinkConfig `yaml:"redis"`
	File            FileSinkConfig  `yaml:"file"`
}

type HTTPSinkConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
}

type RedisSinkConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Key      string        `yaml:"key"`
	TTL      time.Duration `yaml:"ttl"`
}

type FileSinkConfig struct {
	Path string `yaml:"path"`
}

// APIConfig configures the control HTTP API.
type APIConfig struct {
	Listen string `yaml:"listen"`
	// RateLimit is the number of requests per minute allowed per client IP. 0 disables limiting.
	RateLimit int `yaml:"rate_limit"`
}

type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	ServiceName  string  `yaml:"service_name"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"sampling_rate"`
}
