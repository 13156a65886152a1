// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PLAYCORE_"

// envReader resolves typed values from the environment and logs where each
// value came from. Invalid values fall back to the default with a warning.
type envReader struct {
	lookup   func(string) (string, bool)
	logger   zerolog.Logger
	consumed map[string]struct{}
}

func newEnvReader(lookup func(string) (string, bool), logger zerolog.Logger) *envReader {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &envReader{lookup: lookup, logger: logger, consumed: make(map[string]struct{})}
}

func (r *envReader) raw(key string) (string, bool) {
	key = EnvPrefix + key
	r.consumed[key] = struct{}{}
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *envReader) invalid(key, value, kind string) {
	r.logger.Warn().
		Str("key", EnvPrefix+key).
		Str("value", value).
		Msgf("invalid %s in environment variable, keeping previous value", kind)
}

func (r *envReader) used(key string, sensitive bool, value any) {
	e := r.logger.Debug().Str("key", EnvPrefix+key).Str("source", "environment")
	if sensitive {
		e = e.Bool("sensitive", true)
	} else {
		e = e.Interface("value", value)
	}
	e.Msg("using environment variable")
}

func isSensitive(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "password") || strings.Contains(k, "token")
}

func (r *envReader) String(key string, dst *string) {
	if v, ok := r.raw(key); ok {
		*dst = v
		r.used(key, isSensitive(key), v)
	}
}

func (r *envReader) Int(key string, dst *int) {
	v, ok := r.raw(key)
	if !ok {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		r.invalid(key, v, "integer")
		return
	}
	*dst = i
	r.used(key, false, i)
}

func (r *envReader) Float(key string, dst *float64) {
	v, ok := r.raw(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.invalid(key, v, "float")
		return
	}
	*dst = f
	r.used(key, false, f)
}

func (r *envReader) Duration(key string, dst *time.Duration) {
	v, ok := r.raw(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.invalid(key, v, "duration")
		return
	}
	*dst = d
	r.used(key, false, d.String())
}

// Bool accepts true/false, 1/0 and yes/no in any case.
func (r *envReader) Bool(key string, dst *bool) {
	v, ok := r.raw(key)
	if !ok {
		return
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	default:
		r.invalid(key, v, "boolean")
		return
	}
	r.used(key, false, *dst)
}

// List splits a comma-separated value and drops empty items.
func (r *envReader) List(key string, dst *[]string) {
	v, ok := r.raw(key)
	if !ok {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
	r.used(key, false, out)
}

// IntList parses a comma-separated list of integers. One bad item rejects the value.
func (r *envReader) IntList(key string, dst *[]int) {
	var items []string
	r.List(key, &items)
	if items == nil {
		return
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		i, err := strconv.Atoi(item)
		if err != nil {
			r.invalid(key, strings.Join(items, ","), "integer list")
			return
		}
		out = append(out, i)
	}
	*dst = out
}
