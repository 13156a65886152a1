// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api exposes a player over a JSON control API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/samber/mo"

	"github.com/ManuGH/playcore/internal/api/middleware"
	"github.com/ManuGH/playcore/internal/log"
	"github.com/ManuGH/playcore/internal/observe"
	"github.com/ManuGH/playcore/internal/player"
	"github.com/ManuGH/playcore/internal/tracks"
)

// Player is the part of player.Controller the API drives.
type Player interface {
	Prepare(req player.Request) error
	Fetch() error
	ComingSoon(message string) error
	FetchFailed(message string) error
	Stop(position mo.Option[time.Duration]) error
	Start() error
	Replay() error
	ToggleFullScreen() error
	RequestQualityPicker() error
	RequestSpeedPicker() error
	SetControllerVisible(visible bool) error
	SelectSpeed(rate float64) (bool, error)
	SelectQuality(d tracks.Descriptor) (bool, error)
	SelectAudio(d tracks.Descriptor) (bool, error)
	SelectSubtitle(d tracks.Descriptor) (bool, error)
	Status() (player.Status, error)
	Projections() *player.Projections
	Actions() *observe.OneShot[player.Action]
	Messages() *observe.OneShot[player.Message]
}

var _ Player = (*player.Controller)(nil)

// Config configures a Server.
type Config struct {
	Listen string
	// RateLimit is the per-client request budget per minute on /api/v1. Zero disables it.
	RateLimit int
	// TracingService enables request spans when set.
	TracingService string
	Version        string
	Logger         zerolog.Logger

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server serves the control API for one player.
type Server struct {
	cfg    Config
	player Player
	router chi.Router
	logger zerolog.Logger
}

// New builds the router. The server does not listen until Run.
func New(cfg Config, p Player) *Server {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		cfg:    cfg,
		player: p,
		logger: cfg.Logger.With().Str(log.FieldComponent, "api").Logger(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := middleware.NewRouter(middleware.StackConfig{
		Logger:         s.logger,
		EnableLogging:  true,
		EnableMetrics:  true,
		TracingService: s.cfg.TracingService,
	})

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestLimit: s.cfg.RateLimit,
			WindowSize:   time.Minute,
		}))

		r.Get("/state", s.handleState)
		r.Get("/tracks", s.handleTracks)
		r.Get("/actions/next", s.handleNextAction)
		r.Get("/messages/next", s.handleNextMessage)

		r.Post("/prepare", s.handlePrepare)
		r.Post("/fetch", s.handleFetch)
		r.Post("/fetch/coming-soon", s.handleComingSoon)
		r.Post("/fetch/failed", s.handleFetchFailed)
		r.Post("/stop", s.handleStop)
		r.Post("/start", s.handleSimple(s.player.Start))
		r.Post("/replay", s.handleSimple(s.player.Replay))
		r.Post("/fullscreen", s.handleSimple(s.player.ToggleFullScreen))
		r.Post("/controller", s.handleController)

		r.Post("/pickers/quality", s.handleSimple(s.player.RequestQualityPicker))
		r.Post("/pickers/speed", s.handleSimple(s.player.RequestSpeedPicker))

		r.Post("/select/speed", s.handleSelectSpeed)
		r.Post("/select/{kind}", s.handleSelectTrack)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, CodeNotFound, "no such route")
	})
	return r
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout / 2,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       2 * s.cfg.WriteTimeout,
		MaxHeaderBytes:    1 << 16,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("control API listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Str(log.FieldEvent, "api.server.failed").Msg("control API failed")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down control API")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown control API: %w", err)
	}
	return <-errCh
}
