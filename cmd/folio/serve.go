// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ManuGH/folio/internal/config"
	"github.com/ManuGH/folio/internal/daemon"
	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio server",
		Long:  "Load settings and the portfolio document, then serve the page, the JSON API and metrics until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *rootOptions) error {
	if parent == nil {
		parent = context.Background()
	}

	// Safe defaults until settings are loaded.
	xlog.Configure(xlog.Config{
		Level:   "info",
		Service: "folio",
		Version: version.Version,
	})
	logger := xlog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := opts.settingsPath()
	cfg, loader, err := opts.loadSettings()
	if err != nil {
		logger.Error().
			Err(err).
			Str(xlog.FieldEvent, "config.load_failed").
			Str(xlog.FieldPath, path).
			Msg("failed to load configuration")
		return err
	}

	xlog.Configure(xlog.Config{
		Level:   cfg.LogLevel,
		Service: "folio",
		Version: cfg.Version,
	})
	logger = xlog.WithComponent("daemon")
	if path != "" {
		logger.Info().
			Str(xlog.FieldEvent, "config.loaded").
			Str(xlog.FieldSource, "file").
			Str(xlog.FieldPath, path).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str(xlog.FieldEvent, "config.loaded").
			Str(xlog.FieldSource, "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	settings := config.NewHolder(cfg, loader)
	rt, err := daemon.Bootstrap(ctx, settings)
	if err != nil {
		logger.Error().Err(err).Str(xlog.FieldEvent, "startup.failed").Msg("startup failed")
		return fmt.Errorf("bootstrap: %w", err)
	}

	deps := daemon.Deps{
		Logger:     logger,
		Server:     cfg.Server,
		APIHandler: rt.API.Handler(),
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = daemon.MetricsHandler()
		deps.MetricsAddr = cfg.Metrics.ListenAddr
	}
	mgr, err := daemon.NewManager(deps)
	if err != nil {
		_ = rt.Close(context.WithoutCancel(ctx))
		return err
	}
	rt.RegisterHooks(mgr)

	snap := rt.Portfolio.Current()
	logger.Info().
		Str(xlog.FieldEvent, "startup").
		Str("name", snap.Doc.Personal.Name).
		Str("version", cfg.Version).
		Str("commit", version.Commit).
		Str("listen", cfg.Server.ListenAddr).
		Bool("metrics", cfg.Metrics.Enabled).
		Str(xlog.FieldSource, string(snap.Origin)).
		Msgf("starting folio %s", cfg.Version)

	if err := daemon.NewApp(logger, mgr, rt).Run(ctx); err != nil {
		logger.Error().Err(err).Str(xlog.FieldEvent, "daemon.failed").Msg("daemon stopped with error")
		return err
	}
	logger.Info().Str(xlog.FieldEvent, "shutdown.complete").Msg("folio stopped")
	return nil
}
