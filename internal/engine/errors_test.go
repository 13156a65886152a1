// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("loader: %w", ErrBehindLiveWindow)
	err := SourceError(inner)

	assert.True(t, errors.Is(err, ErrBehindLiveWindow))
	assert.Contains(t, err.Error(), "behind live window")
	assert.Contains(t, err.Error(), "source error")

	var ee *Error
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &ee))
	assert.Equal(t, TypeSource, ee.Type)
}

func TestError_NoCause(t *testing.T) {
	err := &Error{Type: TypeRenderer}
	assert.Equal(t, "renderer error: playback failed", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhaseBuffering, "buffering"},
		{PhaseReady, "ready"},
		{PhaseEnded, "ended"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.phase.String())
		})
	}
}
