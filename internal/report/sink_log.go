// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package report

import (
	"context"

	"github.com/rs/zerolog"

	xlog "github.com/ManuGH/playcore/internal/log"
)

// LogSink writes reports to the structured log.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink { return &LogSink{logger: logger} }

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, r Report) error {
	s.logger.Info().
		Str(xlog.FieldSessionID, r.SessionID).
		Uint64(xlog.FieldGeneration, r.Generation).
		Str(xlog.FieldURL, r.Locator).
		Int64(xlog.FieldPosition, r.PositionMS).
		Float64(xlog.FieldSpeed, r.Speed).
		Msg("playback progress")
	return nil
}

func (s *LogSink) Close() error { return nil }
