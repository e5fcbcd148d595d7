// SPDX-License-Identifier: MIT

// Package daemon owns folio's process lifecycle: listeners, background
// workers and ordered shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	xlog "github.com/ManuGH/folio/internal/log"
)

// ShutdownHook releases a resource during shutdown.
type ShutdownHook func(ctx context.Context) error

// Manager runs the HTTP listeners.
type Manager interface {
	// Start binds the listeners and blocks until ctx is cancelled or a
	// server fails, then shuts down.
	Start(ctx context.Context) error

	// Shutdown stops the servers, then runs hooks in reverse registration order.
	Shutdown(ctx context.Context) error

	// RegisterShutdownHook adds a hook; the last registered runs first.
	RegisterShutdownHook(name string, hook ShutdownHook)

	// APIAddr is the bound public address, empty before Start.
	APIAddr() string
}

type manager struct {
	deps Deps

	apiServer     *http.Server
	metricsServer *http.Server
	apiAddr       string

	shutdownHooks []namedHook

	started  bool
	stopping bool
	mu       sync.Mutex

	logger zerolog.Logger
}

type namedHook struct {
	name string
	hook ShutdownHook
}

// NewManager validates deps and returns an unstarted manager.
func NewManager(deps Deps) (Manager, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	return &manager{
		deps:   deps,
		logger: deps.Logger.With().Str(xlog.FieldComponent, "manager").Logger(),
	}, nil
}

func (m *manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	m.started = true
	m.mu.Unlock()

	cfg := m.deps.Server
	m.logger.Info().
		Str("listen", cfg.ListenAddr).
		Dur("read_timeout", cfg.ReadTimeout).
		Dur("write_timeout", cfg.WriteTimeout).
		Dur("shutdown_timeout", cfg.ShutdownTimeout).
		Msg("Starting daemon manager")

	errChan := make(chan error, 2)

	if m.deps.MetricsHandler != nil && m.deps.MetricsAddr != "" {
		m.metricsServer = &http.Server{
			Handler:           m.deps.MetricsHandler,
			ReadHeaderTimeout: cfg.ReadTimeout / 2,
		}
		if _, err := m.serve(m.metricsServer, m.deps.MetricsAddr, "metrics", errChan); err != nil {
			return m.failStart(ctx, fmt.Errorf("failed to start metrics server: %w", err))
		}
	}

	m.apiServer = &http.Server{
		Handler:           m.deps.APIHandler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout / 2,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	addr, err := m.serve(m.apiServer, cfg.ListenAddr, "api", errChan)
	if err != nil {
		return m.failStart(ctx, fmt.Errorf("failed to start API server: %w", err))
	}
	m.mu.Lock()
	m.apiAddr = addr
	m.mu.Unlock()

	select {
	case err := <-errChan:
		m.logger.Error().Err(err).Msg("Server error, initiating shutdown")
		if shutdownErr := m.shutdownDetached(ctx); shutdownErr != nil {
			return fmt.Errorf("server error and shutdown failure: %w", errors.Join(err, shutdownErr))
		}
		return err
	case <-ctx.Done():
		m.logger.Info().Msg("Shutdown signal received")
		return m.shutdownDetached(ctx)
	}
}

// serve binds addr synchronously so bind errors surface from Start, then
// serves in the background.
func (m *manager) serve(srv *http.Server, addr, name string, errChan chan<- error) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	bound := ln.Addr().String()
	m.logger.Info().Str("addr", bound).Str("server", name).Msg("server listening")

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error().
				Err(err).
				Str(xlog.FieldEvent, name+".server.failed").
				Msg("server failed")
			errChan <- fmt.Errorf("%s server: %w", name, err)
		}
	}()
	return bound, nil
}

func (m *manager) failStart(ctx context.Context, err error) error {
	if shutdownErr := m.shutdownDetached(ctx); shutdownErr != nil {
		return errors.Join(err, shutdownErr)
	}
	return err
}

func (m *manager) shutdownDetached(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	return m.Shutdown(shutdownCtx)
}

func (m *manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.stopping {
		m.mu.Unlock()
		return nil
	}
	if !m.started {
		m.mu.Unlock()
		return ErrManagerNotStarted
	}
	m.stopping = true
	hooks := append([]namedHook(nil), m.shutdownHooks...)
	m.mu.Unlock()

	m.logger.Info().Msg("Shutting down daemon manager")

	timeout := m.deps.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var errs []error
	if m.apiServer != nil {
		if err := m.apiServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("API server shutdown: %w", err))
		}
	}
	if m.metricsServer != nil {
		if err := m.metricsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		start := time.Now()
		if err := h.hook(shutdownCtx); err != nil {
			m.logger.Error().
				Err(err).
				Str("hook", h.name).
				Dur("duration", time.Since(start)).
				Msg("Shutdown hook failed")
			errs = append(errs, fmt.Errorf("hook %s: %w", h.name, err))
			continue
		}
		m.logger.Debug().Str("hook", h.name).Dur("duration", time.Since(start)).Msg("Shutdown hook completed")
	}

	if len(errs) > 0 {
		m.logger.Error().Int("error_count", len(errs)).Msg("Shutdown completed with errors")
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}
	m.logger.Info().Msg("Daemon manager stopped cleanly")
	return nil
}

func (m *manager) RegisterShutdownHook(name string, hook ShutdownHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdownHooks = append(m.shutdownHooks, namedHook{name: name, hook: hook})
	m.logger.Debug().Str("hook", name).Msg("Registered shutdown hook")
}

func (m *manager) APIAddr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiAddr
}
