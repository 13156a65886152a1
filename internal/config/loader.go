// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	xlog "github.com/ManuGH/playcore/internal/log"
)

// Loader resolves configuration with precedence ENV > file > defaults.
type Loader struct {
	configPath string
	lookupEnv  func(string) (string, bool)
	logger     zerolog.Logger

	// ConsumedEnvKeys records every PLAYCORE_* key the last Load looked at.
	ConsumedEnvKeys map[string]struct{}
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithLookupEnv replaces os.LookupEnv, for tests.
func WithLookupEnv(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) { l.lookupEnv = fn }
}

// NewLoader creates a loader. An empty configPath means env + defaults only.
func NewLoader(configPath string, opts ...LoaderOption) *Loader {
	l := &Loader{
		configPath: configPath,
		lookupEnv:  os.LookupEnv,
		logger:     xlog.WithComponent("config"),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Path returns the config file path.
func (l *Loader) Path() string { return l.configPath }

// Load parses the file strictly, applies environment overrides and validates.
func (l *Loader) Load() (Config, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := l.loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	env := newEnvReader(l.lookupEnv, l.logger)
	mergeEnv(env, &cfg)
	l.ConsumedEnvKeys = env.consumed

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// EnvKeys lists the consumed environment keys, sorted.
func (l *Loader) EnvKeys() []string {
	return slices.Sorted(maps.Keys(l.ConsumedEnvKeys))
}

// loadFile decodes path on top of cfg. Unknown keys are fatal.
func (l *Loader) loadFile(path string, cfg *Config) error {
	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: %s (only YAML supported)", ErrUnsupportedFormat, ext)
	}

	// #nosec G304 -- the config path is chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	return decodeStrict(data, cfg)
}

func decodeStrict(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("%w: %w", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("config file contains multiple documents or trailing content")
	}
	return nil
}

func mergeEnv(env *envReader, cfg *Config) {
	env.String("LOG_LEVEL", &cfg.Log.Level)

	env.String("USER_AGENT", &cfg.Player.UserAgent)
	env.List("SUPPORTED_TYPES", &cfg.Player.SupportedTypes)
	env.Duration("REPORT_TIMEOUT", &cfg.Player.ReportTimeout)
	env.String("SCENARIO", &cfg.Player.Scenario)

	env.Bool("REPORTING_ENABLED", &cfg.Reporting.Enabled)
	env.Duration("REPORTING_INTERVAL", &cfg.Reporting.Interval)
	env.String("REPORTING_SINK", &cfg.Reporting.Sink)
	env.IntList("REPORTING_SERIOUS_STATUSES", &cfg.Reporting.SeriousStatuses)
	env.String("REPORTING_HTTP_ENDPOINT", &cfg.Reporting.HTTP.Endpoint)
	env.Duration("REPORTING_HTTP_TIMEOUT", &cfg.Reporting.HTTP.Timeout)
	env.Float("REPORTING_HTTP_RATE_LIMIT", &cfg.Reporting.HTTP.RateLimit)
	env.Int("REPORTING_HTTP_BURST", &cfg.Reporting.HTTP.Burst)
	env.String("REPORTING_REDIS_ADDR", &cfg.Reporting.Redis.Addr)
	env.String("REPORTING_REDIS_PASSWORD", &cfg.Reporting.Redis.Password)
	env.Int("REPORTING_REDIS_DB", &cfg.Reporting.Redis.DB)
	env.String("REPORTING_REDIS_KEY", &cfg.Reporting.Redis.Key)
	env.Duration("REPORTING_REDIS_TTL", &cfg.Reporting.Redis.TTL)
	env.String("REPORTING_FILE_PATH", &cfg.Reporting.File.Path)

	env.String("API_LISTEN", &cfg.API.Listen)
	env.Int("API_RATE_LIMIT", &cfg.API.RateLimit)

	env.Bool("TELEMETRY_ENABLED", &cfg.Telemetry.Enabled)
	env.String("TELEMETRY_SERVICE_NAME", &cfg.Telemetry.ServiceName)
	env.String("TELEMETRY_EXPORTER", &cfg.Telemetry.Exporter)
	env.String("TELEMETRY_ENDPOINT", &cfg.Telemetry.Endpoint)
	env.Float("TELEMETRY_SAMPLING_RATE", &cfg.Telemetry.SamplingRate)
}
