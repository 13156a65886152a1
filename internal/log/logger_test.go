// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configureBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Reset()
	Configure(Config{Level: "debug", Output: &buf, Service: "test-svc", Version: "v0.0.1"})
	t.Cleanup(Reset)
	return &buf
}

func TestWithComponent_AddsFields(t *testing.T) {
	buf := configureBuffer(t)

	l := WithComponent("player")
	l.Info().Str(FieldEvent, "state.changed").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "player", entry[FieldComponent])
	assert.Equal(t, "test-svc", entry["service"])
	assert.Equal(t, "v0.0.1", entry["version"])
	assert.Equal(t, "state.changed", entry[FieldEvent])
}

func TestConfigure_OnlyFirstCallApplies(t *testing.T) {
	buf := configureBuffer(t)

	var other bytes.Buffer
	Configure(Config{Output: &other, Service: "ignored"})

	logger := Base()
	logger.Info().Msg("x")
	assert.NotZero(t, buf.Len())
	assert.Zero(t, other.Len())
}

func TestSetLevel(t *testing.T) {
	_ = configureBuffer(t)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.Error(t, SetLevel("loud"))
}

func TestWithContext(t *testing.T) {
	buf := configureBuffer(t)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithSessionID(ctx, "sess-1")
	l := WithContext(ctx, Base())
	l.Info().Msg("x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry[FieldRequestID])
	assert.Equal(t, "sess-1", entry[FieldSessionID])
}

func TestContextAccessors_NilSafe(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	assert.Equal(t, "", RequestIDFromContext(nil))
	//nolint:staticcheck
	assert.Equal(t, "", SessionIDFromContext(nil))
	assert.NotNil(t, FromContext(context.Background()))
}
