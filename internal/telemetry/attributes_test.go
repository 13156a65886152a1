// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestSessionAttributes(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		mediaType string
		wantLen   int
	}{
		{name: "all fields", url: "https://cdn.example/a.m3u8", mediaType: "hls", wantLen: 5},
		{name: "no url", mediaType: "hls", wantLen: 4},
		{name: "bare", wantLen: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := SessionAttributes("s-1", 7, tt.url, tt.mediaType, true)
			assert.Len(t, attrs, tt.wantLen)

			m := attrMap(attrs)
			assert.Equal(t, "s-1", m[SessionIDKey].AsString())
			assert.Equal(t, int64(7), m[GenerationKey].AsInt64())
			assert.True(t, m[LiveKey].AsBool())
		})
	}
}

func TestResumeAttributes(t *testing.T) {
	assert.Empty(t, ResumeAttributes(time.Minute, false))

	m := attrMap(ResumeAttributes(90*time.Second, true))
	assert.Equal(t, int64(90000), m[ResumeKey].AsInt64())
}

func TestTransitionAndTrackAttributes(t *testing.T) {
	m := attrMap(TransitionAttributes("preparing", "playing"))
	assert.Equal(t, "preparing", m[StateFromKey].AsString())
	assert.Equal(t, "playing", m[StateToKey].AsString())

	m = attrMap(TrackAttributes("audio", "1-0"))
	assert.Equal(t, "audio", m[TrackKindKey].AsString())
	assert.Equal(t, "1-0", m[TrackKeyKey].AsString())
}

func TestErrorAttributes(t *testing.T) {
	assert.Len(t, ErrorAttributes("source", ""), 2)

	m := attrMap(ErrorAttributes("source", "fatal"))
	assert.True(t, m[ErrorKey].AsBool())
	assert.Equal(t, "source", m[ErrorTypeKey].AsString())
	assert.Equal(t, "fatal", m[ErrorClassKey].AsString())
}
