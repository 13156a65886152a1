// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by player spans.
const (
	SessionIDKey  = "player.session_id"
	GenerationKey = "player.generation"
	URLKey        = "player.url"
	MediaTypeKey  = "player.media_type"
	ResumeKey     = "player.resume_ms"
	LiveKey       = "player.live"

	StateFromKey = "player.state.from"
	StateToKey   = "player.state.to"

	TrackKindKey = "track.kind"
	TrackKeyKey  = "track.key"

	ReportSinkKey = "report.sink"

	ErrorKey      = "error"
	ErrorTypeKey  = "error.type"
	ErrorClassKey = "error.class"
)

// SessionAttributes describes one engine session.
func SessionAttributes(sessionID string, generation uint64, url, mediaType string, live bool) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(SessionIDKey, sessionID),
		attribute.Int64(GenerationKey, int64(generation)),
		attribute.Bool(LiveKey, live),
	}
	if url != "" {
		attrs = append(attrs, attribute.String(URLKey, url))
	}
	if mediaType != "" {
		attrs = append(attrs, attribute.String(MediaTypeKey, mediaType))
	}
	return attrs
}

// ResumeAttributes is empty when there is no resume position.
func ResumeAttributes(position time.Duration, ok bool) []attribute.KeyValue {
	if !ok {
		return nil
	}
	return []attribute.KeyValue{attribute.Int64(ResumeKey, position.Milliseconds())}
}

// TransitionAttributes describes a state change.
func TransitionAttributes(from, to string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(StateFromKey, from),
		attribute.String(StateToKey, to),
	}
}

// TrackAttributes describes a track selection.
func TrackAttributes(kind, key string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(TrackKindKey, kind),
		attribute.String(TrackKeyKey, key),
	}
}

// ErrorAttributes marks a span as failed with a type and recovery class.
func ErrorAttributes(errorType, class string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
	if class != "" {
		attrs = append(attrs, attribute.String(ErrorClassKey, class))
	}
	return attrs
}
