// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/folio/internal/config"
	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/portfolio"
	"github.com/ManuGH/folio/internal/theme"
)

// listenerBuffer sizes the notification channels; senders never block.
const listenerBuffer = 8

// App owns the long-lived runtime lifecycle (watchers, listeners, reload
// signal) and delegates server management to Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	rt           *Runtime
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator.
func NewApp(logger zerolog.Logger, manager Manager, rt *Runtime) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		rt:           rt,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts the background subsystems and blocks until ctx is cancelled or
// a server fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}
	g, ctx := errgroup.WithContext(ctx)

	if a.rt != nil {
		a.startWorkers(ctx, g)
	}

	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}

func (a *App) startWorkers(ctx context.Context, g *errgroup.Group) {
	cfg := a.rt.Settings.Get()

	// The watcher is best-effort: a missing directory must not stop the site.
	if cfg.Portfolio.Watch {
		if err := a.rt.Portfolio.StartWatcher(ctx); err != nil {
			a.logger.Warn().Err(err).Str(xlog.FieldEvent, "portfolio.watcher_start_failed").Msg("failed to start portfolio watcher")
		}
	}

	snapCh := make(chan *portfolio.Snapshot, listenerBuffer)
	a.rt.Portfolio.RegisterListener(snapCh)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case snap := <-snapCh:
				// Older pages can never be served again; free them.
				a.rt.Renderer.Invalidate(ctx)
				a.logger.Info().
					Str(xlog.FieldEvent, "portfolio.revision_active").
					Uint64(xlog.FieldRevision, snap.Revision).
					Str(xlog.FieldSource, string(snap.Origin)).
					Str("fingerprint", snap.Fingerprint).
					Msg("portfolio revision active")
			}
		}
	})

	themeCh := make(chan theme.Change, listenerBuffer)
	a.rt.Themes.Subscribe(themeCh)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case c := <-themeCh:
				a.logger.Debug().
					Str(xlog.FieldEvent, "theme.changed").
					Str(xlog.FieldVisitorID, c.Visitor).
					Str(xlog.FieldTheme, c.Theme.String()).
					Msg("visitor theme changed")
			}
		}
	})

	cfgCh := make(chan config.AppConfig, 1)
	a.rt.Settings.RegisterListener(cfgCh)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case next := <-cfgCh:
				applyLogLevel(a.logger, next.LogLevel)
			}
		}
	})

	if a.reloadSignal != nil {
		g.Go(func() error {
			hup := make(chan os.Signal, 1)
			signal.Notify(hup, a.reloadSignal)
			defer signal.Stop(hup)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hup:
					a.logger.Info().
						Str(xlog.FieldEvent, "daemon.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, reloading settings and document")
					a.reload(ctx)
				}
			}
		})
	}
}

// reload re-reads settings and the portfolio source. Failures keep the
// current state and are only logged.
func (a *App) reload(ctx context.Context) {
	summary, err := a.rt.Settings.Reload(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Str(xlog.FieldEvent, "config.reload_failed").Msg("settings reload failed")
	} else if summary.RestartRequired {
		a.logger.Warn().
			Str(xlog.FieldEvent, "config.restart_required").
			Strs("changed", summary.ChangedFields).
			Msg("some changed settings take effect after a restart")
	}
	if err := a.rt.Portfolio.Reload(ctx); err != nil {
		a.logger.Warn().Err(err).Str(xlog.FieldEvent, "portfolio.reload_failed").Msg("document reload failed")
	}
}

func applyLogLevel(logger zerolog.Logger, level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return
	}
	if zerolog.GlobalLevel() == parsed {
		return
	}
	zerolog.SetGlobalLevel(parsed)
	logger.Info().Str(xlog.FieldEvent, "log.level_changed").Str("level", parsed.String()).Msg("log level changed")
}
