// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Sink kinds accepted by NewSink.
const (
	SinkLog   = "log"
	SinkHTTP  = "http"
	SinkRedis = "redis"
	SinkFile  = "file"
)

// SinkOptions selects and configures one sink.
type SinkOptions struct {
	Kind  string
	HTTP  HTTPOptions
	Redis RedisOptions
	Path  string
}

// NewSink builds the sink named by opts.Kind.
func NewSink(ctx context.Context, opts SinkOptions, logger zerolog.Logger) (Sink, error) {
	switch opts.Kind {
	case "", SinkLog:
		return NewLogSink(logger), nil
	case SinkHTTP:
		return NewHTTPSink(opts.HTTP)
	case SinkRedis:
		return NewRedisSink(ctx, opts.Redis, logger)
	case SinkFile:
		return NewFileSink(opts.Path, logger)
	default:
		return nil, fmt.Errorf("unknown report sink %q", opts.Kind)
	}
}
