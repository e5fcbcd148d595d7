// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/folio/internal/api"
	"github.com/ManuGH/folio/internal/cache"
	"github.com/ManuGH/folio/internal/config"
	"github.com/ManuGH/folio/internal/health"
	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/portfolio"
	"github.com/ManuGH/folio/internal/prefs"
	"github.com/ManuGH/folio/internal/render"
	"github.com/ManuGH/folio/internal/telemetry"
	"github.com/ManuGH/folio/internal/theme"
)

// cacheCleanupInterval is how often the in-memory page cache drops expired entries.
const cacheCleanupInterval = time.Minute

// Runtime is the wired object graph of a running daemon.
type Runtime struct {
	Settings  *config.Holder
	Telemetry *telemetry.Provider
	Store     prefs.Store
	Pages     cache.Cache
	Portfolio *portfolio.Holder
	Themes    *theme.Manager
	Renderer  *render.Renderer
	Health    *health.Manager
	API       *api.Server

	logger zerolog.Logger
}

// Bootstrap builds every component from the current settings and performs
// the initial document load. On error, whatever was opened is closed again.
func Bootstrap(ctx context.Context, settings *config.Holder) (_ *Runtime, err error) {
	cfg := settings.Get()
	rt := &Runtime{Settings: settings, logger: xlog.WithComponent("daemon")}
	defer func() {
		if err != nil {
			_ = rt.Close(context.WithoutCancel(ctx))
		}
	}()

	if err := health.CheckDataDir(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}

	rt.Telemetry, err = telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "folio",
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	rt.Store, err = prefs.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("preference store: %w", err)
	}

	rt.Pages, err = cache.Open(ctx, cfg.Cache.Backend, cache.RedisConfig{
		Addr: cfg.Cache.RedisAddr,
		DB:   cfg.Cache.RedisDB,
	}, cacheCleanupInterval)
	if err != nil {
		return nil, fmt.Errorf("page cache: %w", err)
	}

	rt.Portfolio = portfolio.NewHolder(portfolio.NewLoader(cfg.Portfolio.Source, cfg.Portfolio.FetchTimeout), rt.Store)
	snap := rt.Portfolio.Load(ctx)

	def, err := theme.Parse(cfg.Theme.Default)
	if err != nil {
		return nil, err
	}
	if rt.Themes, err = theme.NewManager(rt.Store, def); err != nil {
		return nil, err
	}

	clock, err := ClockFor(cfg.Clock)
	if err != nil {
		return nil, err
	}
	rt.Renderer = render.New(render.Options{Cache: rt.Pages, CacheTTL: cfg.Cache.TTL, Clock: clock})

	rt.Health = health.NewManager(cfg.Version)
	rt.Health.RegisterChecker(health.NewDocumentChecker("portfolio", rt.Portfolio))
	rt.Health.RegisterChecker(health.NewPingChecker("prefs", rt.Store))
	rt.Health.RegisterChecker(health.NewDirChecker("assets", cfg.Assets.Root))
	if rc, ok := rt.Pages.(*cache.RedisCache); ok {
		rt.Health.RegisterChecker(health.NewFuncChecker("cache", func(ctx context.Context) health.CheckResult {
			if err := rc.HealthCheck(ctx); err != nil {
				return health.CheckResult{Status: health.StatusDegraded, Error: err.Error()}
			}
			return health.CheckResult{Status: health.StatusHealthy}
		}))
	}

	rt.API, err = api.New(api.Deps{
		Settings:  settings,
		Portfolio: rt.Portfolio,
		Themes:    rt.Themes,
		Renderer:  rt.Renderer,
		Health:    rt.Health,
	})
	if err != nil {
		return nil, err
	}

	rt.logger.Info().
		Str(xlog.FieldEvent, "daemon.bootstrapped").
		Str("storage", cfg.Storage.Backend).
		Str("cache", cfg.Cache.Backend).
		Str(xlog.FieldSource, string(snap.Origin)).
		Uint64(xlog.FieldRevision, snap.Revision).
		Msg("components ready")
	return rt, nil
}

// ClockFor resolves the hero clock settings.
func ClockFor(c config.ClockConfig) (render.ClockConfig, error) {
	zone, err := time.LoadLocation(c.Zone)
	if err != nil {
		return render.ClockConfig{}, fmt.Errorf("clock zone: %w", err)
	}
	return render.ClockConfig{Zone: zone, Label: c.Label}, nil
}

// MetricsHandler serves the Prometheus registry at /metrics.
func MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// RegisterHooks hands the runtime's resources to the manager. Hooks run in
// reverse, so the tracer provider flushes last.
func (rt *Runtime) RegisterHooks(m Manager) {
	m.RegisterShutdownHook("telemetry", rt.Telemetry.Shutdown)
	m.RegisterShutdownHook("prefs", func(context.Context) error { return rt.Store.Close() })
	m.RegisterShutdownHook("cache", func(context.Context) error { return rt.Pages.Close() })
	m.RegisterShutdownHook("portfolio-watcher", func(context.Context) error {
		rt.Portfolio.Stop()
		return nil
	})
}

// Close releases every opened resource. It is used when bootstrap fails or
// when no manager owns the runtime (CLI commands).
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	if rt.Portfolio != nil {
		rt.Portfolio.Stop()
	}
	if rt.Pages != nil {
		errs = append(errs, rt.Pages.Close())
	}
	if rt.Store != nil {
		errs = append(errs, rt.Store.Close())
	}
	if rt.Telemetry != nil {
		errs = append(errs, rt.Telemetry.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
