// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	xlog "github.com/ManuGH/playcore/internal/log"
)

const defaultDebounce = 500 * time.Millisecond

// Holder keeps the current configuration and swaps it atomically on reload.
// A reload that fails to load or validate keeps the previous configuration.
type Holder struct {
	mu      sync.RWMutex
	current Config
	loader  *Loader
	logger  zerolog.Logger

	debounce time.Duration
	wg       sync.WaitGroup

	listenMu  sync.RWMutex
	listeners []chan<- Config
}

// NewHolder creates a holder with an already loaded initial config.
func NewHolder(initial Config, loader *Loader) *Holder {
	return &Holder{
		current:  initial,
		loader:   loader,
		logger:   xlog.WithComponent("config"),
		debounce: defaultDebounce,
	}
}

// SetDebounce changes the quiet period between a file event and the reload.
func (h *Holder) SetDebounce(d time.Duration) { h.debounce = d }

// Get returns the current configuration.
func (h *Holder) Get() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload loads and validates the file, swaps it in and notifies listeners.
func (h *Holder) Reload(_ context.Context) error {
	h.logger.Info().Str(xlog.FieldEvent, "config.reload_start").Msg("reloading configuration")

	next, err := h.loader.Load()
	if err != nil {
		h.logger.Error().Err(err).Str(xlog.FieldEvent, "config.reload_failed").Msg("keeping previous configuration")
		return fmt.Errorf("reload config: %w", err)
	}

	h.mu.Lock()
	prev := h.current
	h.current = next
	h.mu.Unlock()

	h.notify(next)
	h.logChanges(prev, next)
	h.logger.Info().Str(xlog.FieldEvent, "config.reload_success").Msg("configuration reloaded")
	return nil
}

// StartWatcher reloads whenever the config file changes, until ctx is done.
// It is a no-op without a config file.
func (h *Holder) StartWatcher(ctx context.Context) error {
	path := h.loader.Path()
	if path == "" {
		h.logger.Info().Str(xlog.FieldEvent, "config.watcher_disabled").Msg("no config file, watcher disabled")
		return nil
	}
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Editors replace files by rename, so watch the directory and filter.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	h.logger.Info().Str(xlog.FieldEvent, "config.watcher_started").Str("path", path).Msg("watching config file")
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.watchLoop(ctx, w, path)
	}()
	return nil
}

func (h *Holder) watchLoop(ctx context.Context, w *fsnotify.Watcher, path string) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		_ = w.Close()
	}()
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(xlog.FieldEvent, "config.watcher_stopped").Msg("config watcher stopped")
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			h.logger.Debug().Str(xlog.FieldEvent, "config.file_changed").Str("op", ev.Op.String()).Msg("config file changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(h.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if err := h.Reload(ctx); err != nil {
				h.logger.Error().Err(err).Str(xlog.FieldEvent, "config.auto_reload_failed").Msg("automatic config reload failed")
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Str(xlog.FieldEvent, "config.watcher_error").Msg("config watcher error")
		}
	}
}

// Wait blocks until the watcher goroutine has exited.
func (h *Holder) Wait() { h.wg.Wait() }

// RegisterListener adds a channel that receives every successfully reloaded
// config. Sends never block; a full channel misses the update.
func (h *Holder) RegisterListener(ch chan<- Config) {
	h.listenMu.Lock()
	defer h.listenMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notify(cfg Config) {
	h.listenMu.RLock()
	defer h.listenMu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- cfg:
		default:
			h.logger.Warn().Str(xlog.FieldEvent, "config.listener_skip").Msg("listener channel full, update skipped")
		}
	}
}

func (h *Holder) logChanges(prev, next Config) {
	if prev.Log.Level != next.Log.Level {
		h.logger.Info().Str("old", prev.Log.Level).Str("new", next.Log.Level).Msg("config changed: log.level")
	}
	if prev.Reporting.Enabled != next.Reporting.Enabled {
		h.logger.Info().Bool("old", prev.Reporting.Enabled).Bool("new", next.Reporting.Enabled).Msg("config changed: reporting.enabled")
	}
	if prev.Reporting.Interval != next.Reporting.Interval {
		h.logger.Info().Dur("old", prev.Reporting.Interval).Dur("new", next.Reporting.Interval).Msg("config changed: reporting.interval")
	}
	if !slices.Equal(prev.Reporting.SeriousStatuses, next.Reporting.SeriousStatuses) {
		h.logger.Info().Ints("old", prev.Reporting.SeriousStatuses).Ints("new", next.Reporting.SeriousStatuses).Msg("config changed: reporting.serious_statuses")
	}
	if prev.Reporting.Sink != next.Reporting.Sink {
		h.logger.Warn().Str("old", prev.Reporting.Sink).Str("new", next.Reporting.Sink).Msg("reporting.sink changed; takes effect after restart")
	}
	if prev.API.Listen != next.API.Listen {
		h.logger.Warn().Str("old", prev.API.Listen).Str("new", next.API.Listen).Msg("api.listen changed; takes effect after restart")
	}
}
