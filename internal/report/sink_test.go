// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func sampleReport() Report {
	return Report{
		SessionID:  "sess-1",
		Generation: 3,
		Locator:    "https://cdn.example/live/master.m3u8",
		PositionMS: 42000,
		Speed:      1.5,
		At:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHTTPSink_PostsJSON(t *testing.T) {
	var got Report
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink, err := NewHTTPSink(HTTPOptions{Endpoint: srv.URL, UserAgent: "playcore-test"})
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	require.NoError(t, sink.Send(context.Background(), sampleReport()))
	assert.Equal(t, sampleReport(), got)
	assert.Equal(t, "playcore-test", ua)
}

func TestHTTPSink_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	sink, err := NewHTTPSink(HTTPOptions{Endpoint: srv.URL})
	require.NoError(t, err)

	err = sink.Send(context.Background(), sampleReport())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, "token expired", se.Body)

	p := NewSinkPolicy(sink, time.Second, []int{http.StatusUnauthorized})
	assert.True(t, p.IsSeriousError(p.SendReport(context.Background(), sampleReport())))
}

func TestHTTPSink_RequiresEndpoint(t *testing.T) {
	_, err := NewHTTPSink(HTTPOptions{})
	assert.Error(t, err)
}

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisSink) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, newRedisSink(client, RedisOptions{Key: "test", TTL: time.Hour}, nopLogger())
}

func TestRedisSink_Send(t *testing.T) {
	mr, sink := setupMiniRedis(t)
	defer func() { _ = sink.Close() }()

	r := sampleReport()
	require.NoError(t, sink.Send(context.Background(), r))

	key := sink.SessionKey(r.SessionID)
	assert.Equal(t, "42000", mr.HGet(key, "position_ms"))
	assert.Equal(t, "1.5", mr.HGet(key, "speed"))
	assert.Equal(t, r.Locator, mr.HGet(key, "locator"))
	assert.Equal(t, time.Hour, mr.TTL(key))

	r.PositionMS = 52000
	require.NoError(t, sink.Send(context.Background(), r))
	assert.Equal(t, "52000", mr.HGet(key, "position_ms"))

	history, err := mr.List(sink.HistoryKey())
	require.NoError(t, err)
	assert.Equal(t, []string{r.Locator + "@52000", r.Locator + "@42000"}, history)
}

func TestRedisSink_ServerDown(t *testing.T) {
	mr, sink := setupMiniRedis(t)
	mr.Close()

	err := sink.Send(context.Background(), sampleReport())
	assert.Error(t, err)
}

func TestNewRedisSink_PingFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := NewRedisSink(ctx, RedisOptions{Addr: "127.0.0.1:1"}, nopLogger())
	assert.Error(t, err)
}

func TestFileSink_AtomicReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	sink, err := NewFileSink(path, nopLogger())
	require.NoError(t, err)

	r := sampleReport()
	require.NoError(t, sink.Send(context.Background(), r))
	r.PositionMS = 99000
	require.NoError(t, sink.Send(context.Background(), r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, int64(99000), got.PositionMS)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
