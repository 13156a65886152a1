// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Accumulates(t *testing.T) {
	v := New()
	assert.True(t, v.IsValid())
	assert.NoError(t, v.Err())

	v.Range("interval", 0, 1, 60)
	v.OneOf("sink", "kafka", []string{"log", "http"})
	assert.False(t, v.IsValid())

	err := v.Err()
	require.Error(t, err)
	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Errors(), 2)
	assert.Equal(t, "interval", ve.Errors()[0].Field)
	assert.Equal(t,
		`validation failed for interval: value must be between 1 and 60, got 0; validation failed for sink: value must be one of [log http], got "kafka"`,
		err.Error())

	v.Positive("burst", 0)
	assert.Len(t, ve.Errors(), 2, "Err returns a copy")
}

func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid", "https://reports.example/v1", true},
		{"empty", "", false},
		{"no host", "https:///v1", false},
		{"bad scheme", "ftp://reports.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.URL("endpoint", tt.value, []string{"http", "https"})
			assert.Equal(t, tt.ok, v.IsValid(), v.Err())
		})
	}
}

func TestValidator_MediaURL(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"https://cdn.example/live/index.m3u8", true},
		{"http://cdn.example/movie.mp4", true},
		{"https://cdn.example/", false},
		{"rtsp://cdn.example/stream", false},
		{"", false},
	}
	for _, tt := range tests {
		v := New()
		v.MediaURL("url", tt.value)
		assert.Equal(t, tt.ok, v.IsValid(), tt.value)
	}
}

func TestValidator_ListenAddr(t *testing.T) {
	for addr, ok := range map[string]bool{
		":8080":          true,
		"127.0.0.1:9000": true,
		"localhost":      false,
		":http":          false,
		":70000":         false,
	} {
		v := New()
		v.ListenAddr("api.listen", addr)
		assert.Equal(t, ok, v.IsValid(), addr)
	}
}

func TestValidator_Scalars(t *testing.T) {
	v := New()
	v.Ratio("sampling", 1.5)
	v.DurationRange("interval", 100*time.Millisecond, time.Second, time.Hour)
	v.NotEmpty("key", "  ")
	v.FilePath("path", "../escape.json")
	v.FilePath("path", "/var/lib/playcore/")
	assert.Len(t, v.Errors(), 5)

	v = New()
	v.Ratio("sampling", 0.25)
	v.DurationRange("interval", 30*time.Second, time.Second, time.Hour)
	v.FilePath("path", "/var/lib/playcore/progress.json")
	v.FilePath("path", "")
	assert.True(t, v.IsValid())
}

func TestParseLogLevel(t *testing.T) {
	l, err := ParseLogLevel(" Debug ")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, l)

	_, err = ParseLogLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}
