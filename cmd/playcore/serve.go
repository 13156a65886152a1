// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/playcore/internal/api"
	"github.com/ManuGH/playcore/internal/config"
	"github.com/ManuGH/playcore/internal/engine/sim"
	"github.com/ManuGH/playcore/internal/log"
	"github.com/ManuGH/playcore/internal/player"
	"github.com/ManuGH/playcore/internal/report"
	"github.com/ManuGH/playcore/internal/telemetry"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the player and its control API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root.configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	log.Configure(log.Config{Level: "info", Service: "playcore", Version: version})
	logger := log.WithComponent("daemon")

	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "config.load_failed").Str("config_path", configPath).Msg("failed to load configuration")
		return err
	}
	log.Configure(log.Config{Level: cfg.Log.Level, Service: "playcore", Version: version})
	logger = log.WithComponent("daemon")
	logger.Info().
		Str(log.FieldEvent, "config.loaded").
		Str("path", configPath).
		Strs("env_keys", loader.EnvKeys()).
		Msg("configuration loaded")

	tp, err := telemetry.NewProvider(ctx, cfg.TelemetryConfig(version))
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer shutdownTelemetry(tp, logger)

	sink, err := report.NewSink(ctx, cfg.SinkOptions(), log.WithComponent("report"))
	if err != nil {
		return fmt.Errorf("init report sink: %w", err)
	}
	defer func() { _ = sink.Close() }()
	policy := report.NewSinkPolicy(sink, cfg.Reporting.Interval, cfg.Reporting.SeriousStatuses)
	policy.SetEnabled(cfg.Reporting.Enabled)

	sc, err := loadScenario(cfg.Player.Scenario)
	if err != nil {
		return err
	}

	ctrl := player.NewController(player.Options{
		Factory:       sim.NewFactory(sc, sim.Options{Logger: log.WithComponent("sim")}),
		Policy:        policy,
		Logger:        log.WithComponent("player"),
		Tracer:        telemetry.Tracer("playcore/player"),
		UserAgent:     cfg.Player.UserAgent,
		Supported:     cfg.MediaTypes(),
		ReportTimeout: cfg.Player.ReportTimeout,
	})
	defer func() { _ = ctrl.Close() }()

	apiCfg := api.Config{
		Listen:    cfg.API.Listen,
		RateLimit: cfg.API.RateLimit,
		Version:   version,
		Logger:    log.Base(),
	}
	if cfg.Telemetry.Enabled {
		apiCfg.TracingService = cfg.Telemetry.ServiceName
	}
	srv := api.New(apiCfg, ctrl)

	holder := config.NewHolder(cfg, loader)
	updates := make(chan config.Config, 1)
	holder.RegisterListener(updates)

	logger.Info().
		Str("scenario", sc.Name).
		Str("sink", sink.Name()).
		Bool("reporting", cfg.Reporting.Enabled).
		Msg("starting playcore")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		if err := holder.StartWatcher(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		holder.Wait()
		return nil
	})
	g.Go(func() error {
		applyUpdates(gctx, updates, policy, logger)
		return nil
	})
	return g.Wait()
}

// applyUpdates pushes the hot-reloadable settings of each new config.
func applyUpdates(ctx context.Context, updates <-chan config.Config, policy *report.SinkPolicy, logger zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg := <-updates:
			policy.Update(cfg.Reporting.Interval, cfg.Reporting.SeriousStatuses)
			policy.SetEnabled(cfg.Reporting.Enabled)
			if err := log.SetLevel(cfg.Log.Level); err != nil {
				logger.Warn().Err(err).Msg("log level not applied")
			}
			logger.Info().Str(log.FieldEvent, "config.applied").Msg("reloaded settings applied")
		}
	}
}

// loadScenario accepts a builtin name or a path to a YAML scenario.
func loadScenario(ref string) (sim.Scenario, error) {
	if ext := filepath.Ext(ref); ext == ".yaml" || ext == ".yml" || strings.ContainsRune(ref, filepath.Separator) {
		sc, err := sim.LoadScenario(ref)
		if err != nil {
			return sim.Scenario{}, fmt.Errorf("load scenario: %w", err)
		}
		return sc, nil
	}
	sc, err := sim.Builtin(ref)
	if err != nil {
		return sim.Scenario{}, fmt.Errorf("scenario %q (builtin: %s): %w", ref, strings.Join(sim.BuiltinNames(), ", "), err)
	}
	return sc, nil
}

func shutdownTelemetry(tp *telemetry.Provider, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("telemetry shutdown failed")
	}
}
