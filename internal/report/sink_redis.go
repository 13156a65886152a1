// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisOptions configures the Redis sink.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
}

const defaultRedisKey = "playcore:progress"

// RedisSink stores the latest report of each session in a hash and appends
// every report to a capped list.
type RedisSink struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisSink connects and pings the server.
func NewRedisSink(ctx context.Context, opts RedisOptions, logger zerolog.Logger) (*RedisSink, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected to Redis report sink")
	return newRedisSink(client, opts, logger), nil
}

func newRedisSink(client *redis.Client, opts RedisOptions, logger zerolog.Logger) *RedisSink {
	key := opts.Key
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisSink{client: client, key: key, ttl: opts.TTL, logger: logger}
}

const historyLen = 100

func (s *RedisSink) Name() string { return "redis" }

// SessionKey is the hash holding the latest report for one session.
func (s *RedisSink) SessionKey(sessionID string) string {
	return s.key + ":" + sessionID
}

// HistoryKey is the list of recent reports across sessions.
func (s *RedisSink) HistoryKey() string {
	return s.key + ":history"
}

func (s *RedisSink) Send(ctx context.Context, r Report) error {
	hkey := s.SessionKey(r.SessionID)
	entry := r.Locator + "@" + strconv.FormatInt(r.PositionMS, 10)

	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, hkey,
			"locator", r.Locator,
			"generation", r.Generation,
			"position_ms", r.PositionMS,
			"speed", strconv.FormatFloat(r.Speed, 'f', -1, 64),
			"at", r.At.UTC().Format(time.RFC3339Nano),
		)
		if s.ttl > 0 {
			p.Expire(ctx, hkey, s.ttl)
		}
		p.LPush(ctx, s.HistoryKey(), entry)
		p.LTrim(ctx, s.HistoryKey(), 0, historyLen-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write: %w", err)
	}
	return nil
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
