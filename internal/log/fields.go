// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldSessionID  = "session_id"
	FieldGeneration = "generation"
	FieldRequestID  = "request_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Media fields
	FieldURL        = "url"
	FieldMediaType  = "media_type"
	FieldResolution = "resolution"
	FieldRenderer   = "renderer"
	FieldTrackKey   = "track_key"
	FieldSpeed      = "speed"
	FieldPosition   = "position_ms"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"
	FieldClass    = "class"
)
