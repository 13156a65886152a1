// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import (
	"errors"
	"fmt"
)

// ErrorType is the top-level category an engine attaches to a failure.
type ErrorType string

const (
	TypeSource     ErrorType = "source"
	TypeRenderer   ErrorType = "renderer"
	TypeUnexpected ErrorType = "unexpected"
	TypeRemote     ErrorType = "remote"
)

// ErrBehindLiveWindow marks a live position that fell out of the available window.
var ErrBehindLiveWindow = errors.New("behind live window")

// Error is a failure signal emitted by the engine.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "playback failed"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// SourceError builds a TypeSource error around cause.
func SourceError(cause error) *Error {
	return &Error{Type: TypeSource, Message: "source error", Cause: cause}
}
