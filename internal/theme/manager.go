// SPDX-License-Identifier: MIT

package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"

	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/metrics"
	"github.com/ManuGH/folio/internal/prefs"
	"github.com/rs/zerolog"
)

// Change is broadcast after a toggle.
type Change struct {
	Visitor string
	Theme   Theme
}

// Manager reads and writes visitor themes in the preference store.
type Manager struct {
	store  prefs.Store
	def    Theme
	logger zerolog.Logger

	mu          sync.RWMutex
	subscribers []chan<- Change
}

// NewManager creates a manager. def must be dark or light.
func NewManager(store prefs.Store, def Theme) (*Manager, error) {
	if !def.Valid() {
		return nil, fmt.Errorf("default theme: %w: %q", ErrInvalidTheme, def)
	}
	return &Manager{
		store:  store,
		def:    def,
		logger: xlog.WithComponent("theme"),
	}, nil
}

// Default returns the configured default theme.
func (m *Manager) Default() Theme { return m.def }

// Current resolves the visitor's theme: the saved choice, else the
// browser's colour-scheme hint, else the default. Store errors are logged
// and fall through to the hint.
func (m *Manager) Current(ctx context.Context, visitor, hint string) Theme {
	if visitor != "" {
		if t, ok := m.stored(ctx, visitor); ok {
			return t
		}
	}
	if t, ok := FromHint(hint); ok {
		return t
	}
	return m.def
}

// stored reports the persisted choice, if any.
func (m *Manager) stored(ctx context.Context, visitor string) (Theme, bool) {
	raw, err := m.store.Get(ctx, visitor, prefs.KeyTheme)
	if err != nil {
		if !errors.Is(err, prefs.ErrNotFound) {
			logger := xlog.WithContext(ctx, m.logger)
			logger.Warn().
				Err(err).
				Str(xlog.FieldEvent, "theme.read_failed").
				Msg("failed to read theme preference")
		}
		return "", false
	}
	t, err := Parse(raw)
	if err != nil {
		return "", false
	}
	return t, true
}

// Toggle flips the visitor's current theme, saves it and broadcasts the
// change.
func (m *Manager) Toggle(ctx context.Context, visitor, hint string) (Theme, error) {
	next := m.Current(ctx, visitor, hint).Opposite()
	if err := m.persist(ctx, visitor, next); err != nil {
		return "", err
	}
	metrics.IncThemeChange(next.String(), "toggle")
	m.broadcast(Change{Visitor: visitor, Theme: next})

	logger := xlog.WithContext(ctx, m.logger)
	logger.Info().
		Str(xlog.FieldEvent, "theme.toggled").
		Str(xlog.FieldTheme, next.String()).
		Msgf("Theme toggled to: %s", next)
	return next, nil
}

// Set saves an explicit choice. Unlike Toggle it does not broadcast.
func (m *Manager) Set(ctx context.Context, visitor string, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, t)
	}
	if err := m.persist(ctx, visitor, t); err != nil {
		return err
	}
	metrics.IncThemeChange(t.String(), "set")
	return nil
}

func (m *Manager) persist(ctx context.Context, visitor string, t Theme) error {
	if visitor == "" {
		return errors.New("theme: empty visitor id")
	}
	if err := m.store.Set(ctx, visitor, prefs.KeyTheme, t.String()); err != nil {
		return fmt.Errorf("theme: save preference: %w", err)
	}
	return nil
}

// Subscribe registers ch for toggle broadcasts. Sends never block.
func (m *Manager) Subscribe(ch chan<- Change) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, ch)
}

func (m *Manager) broadcast(c Change) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.subscribers {
		select {
		case ch <- c:
		default:
			m.logger.Debug().
				Str(xlog.FieldEvent, "theme.subscriber_skip").
				Msg("skipped theme subscriber (channel full)")
		}
	}
}
