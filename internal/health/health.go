// SPDX-License-Identifier: MIT

// Package health serves liveness and readiness probes.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	xlog "github.com/ManuGH/folio/internal/log"
	"golang.org/x/sync/errgroup"
)

// Status is a component or overall state.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult is the outcome of one checker.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Response is the probe body.
type Response struct {
	Status    Status                 `json:"status"`
	Ready     *bool                  `json:"ready,omitempty"`
	Version   string                 `json:"version,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Checker is one component probe.
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// CheckTimeout bounds each checker.
const CheckTimeout = 2 * time.Second

// Manager runs registered checkers.
type Manager struct {
	version string

	mu       sync.RWMutex
	checkers []Checker
}

// NewManager creates a manager reporting version.
func NewManager(version string) *Manager {
	return &Manager{version: version}
}

// RegisterChecker adds a checker.
func (m *Manager) RegisterChecker(c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers = append(m.checkers, c)
}

// runChecks executes every checker concurrently.
func (m *Manager) runChecks(ctx context.Context) map[string]CheckResult {
	m.mu.RLock()
	checkers := append([]Checker(nil), m.checkers...)
	m.mu.RUnlock()

	results := make(map[string]CheckResult, len(checkers))
	var mu sync.Mutex
	var g errgroup.Group
	for _, c := range checkers {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, CheckTimeout)
			defer cancel()
			res := c.Check(cctx)
			mu.Lock()
			results[c.Name()] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func overall(results map[string]CheckResult) Status {
	status := StatusHealthy
	for _, r := range results {
		switch r.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}

// Health is the liveness view. Component checks run only when verbose.
func (m *Manager) Health(ctx context.Context, verbose bool) Response {
	resp := Response{Status: StatusHealthy, Version: m.version, Timestamp: time.Now()}
	if verbose {
		resp.Checks = m.runChecks(ctx)
		resp.Status = overall(resp.Checks)
	}
	return resp
}

// Ready is the readiness view: any unhealthy component makes the process
// not ready. Degraded components still serve.
func (m *Manager) Ready(ctx context.Context) Response {
	checks := m.runChecks(ctx)
	status := overall(checks)
	ready := status != StatusUnhealthy
	return Response{
		Status:    status,
		Ready:     &ready,
		Version:   m.version,
		Timestamp: time.Now(),
		Checks:    checks,
	}
}

// ServeHealth always answers 200 while the process is alive.
func (m *Manager) ServeHealth(w http.ResponseWriter, r *http.Request) {
	verbose := r.URL.Query().Get("verbose") == "true"
	writeJSON(w, r, http.StatusOK, m.Health(r.Context(), verbose))
}

// ServeReady answers 503 when not ready.
func (m *Manager) ServeReady(w http.ResponseWriter, r *http.Request) {
	resp := m.Ready(r.Context())
	code := http.StatusOK
	if !*resp.Ready {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, r, code, resp)

	logger := xlog.WithComponentFromContext(r.Context(), "health")
	logger.Debug().
		Str(xlog.FieldEvent, "readiness.checked").
		Str(xlog.FieldStatus, string(resp.Status)).
		Msg("readiness check performed")
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger := xlog.WithComponentFromContext(r.Context(), "health")
		logger.Error().
			Err(err).
			Str(xlog.FieldEvent, "health.encode_error").
			Msg("failed to encode health response")
	}
}
