// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	xlog "github.com/ManuGH/playcore/internal/log"
)

// FileSink atomically replaces a file with the latest report.
type FileSink struct {
	path   string
	logger zerolog.Logger
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string, logger zerolog.Logger) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("file sink: path is required")
	}
	return &FileSink{path: path, logger: logger}, nil
}

func (s *FileSink) Name() string { return "file" }

func (s *FileSink) Send(ctx context.Context, r Report) error {
	pending, err := renameio.NewPendingFile(s.path)
	if err != nil {
		return fmt.Errorf("create pending report file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger := xlog.WithContext(ctx, s.logger)
			logger.Debug().Err(err).Msg("cleanup pending report file")
		}
	}()

	enc := json.NewEncoder(pending)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace report file: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error { return nil }
