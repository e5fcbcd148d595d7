// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/rs/zerolog"
)

// hotReloadable lists the settings a running daemon applies without restart.
var hotReloadable = map[string]struct{}{
	"LogLevel":  {},
	"API.Token": {},
}

// ChangeSummary describes the result of comparing two AppConfigs.
type ChangeSummary struct {
	ChangedFields   []string
	RestartRequired bool
}

// Diff compares two configurations field by field.
func Diff(old, next AppConfig) ChangeSummary {
	var s ChangeSummary
	s.compare("", reflect.ValueOf(old), reflect.ValueOf(next))
	sort.Strings(s.ChangedFields)
	return s
}

func (s *ChangeSummary) compare(prefix string, ov, nv reflect.Value) {
	t := ov.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Name == "Version" {
			continue
		}
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		o, n := ov.Field(i), nv.Field(i)
		if o.Kind() == reflect.Struct {
			s.compare(path, o, n)
			continue
		}
		if !reflect.DeepEqual(o.Interface(), n.Interface()) {
			s.ChangedFields = append(s.ChangedFields, path)
			if _, ok := hotReloadable[path]; !ok {
				s.RestartRequired = true
			}
		}
	}
}

// Holder owns the live configuration and reloads it on demand.
type Holder struct {
	mu      sync.RWMutex
	current AppConfig
	loader  *Loader
	logger  zerolog.Logger

	listenMu  sync.Mutex
	listeners []chan<- AppConfig
}

// NewHolder wraps an already loaded configuration.
func NewHolder(initial AppConfig, loader *Loader) *Holder {
	return &Holder{
		current: initial,
		loader:  loader,
		logger:  xlog.WithComponent("config"),
	}
}

// Get returns the current configuration.
func (h *Holder) Get() AppConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload re-runs the loader. On any error the current configuration stays in place.
func (h *Holder) Reload(_ context.Context) (ChangeSummary, error) {
	h.logger.Info().Str(xlog.FieldEvent, "config.reload_start").Msg("reloading configuration")

	next, err := h.loader.Load()
	if err != nil {
		h.logger.Error().Err(err).Str(xlog.FieldEvent, "config.reload_failed").Msg("failed to load new configuration")
		return ChangeSummary{}, fmt.Errorf("load config: %w", err)
	}

	h.mu.Lock()
	old := h.current
	h.current = next
	h.mu.Unlock()

	summary := Diff(old, next)
	if len(summary.ChangedFields) > 0 {
		h.logger.Info().
			Str(xlog.FieldEvent, "config.reload_success").
			Strs("changed", summary.ChangedFields).
			Bool("restart_required", summary.RestartRequired).
			Msg("configuration reloaded")
		h.notify(next)
	}
	return summary, nil
}

// RegisterListener receives the new configuration after each effective reload.
// Sends are non-blocking.
func (h *Holder) RegisterListener(ch chan<- AppConfig) {
	h.listenMu.Lock()
	defer h.listenMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notify(cfg AppConfig) {
	h.listenMu.Lock()
	defer h.listenMu.Unlock()
	for _, ch := range h.listeners {
		select {
		case ch <- cfg:
		default:
			h.logger.Warn().Str(xlog.FieldEvent, "config.listener_full").Msg("config listener channel full, skipping")
		}
	}
}

// Redacted returns a copy safe to print or log.
func Redacted(cfg AppConfig) AppConfig {
	if cfg.API.Token != "" {
		cfg.API.Token = "***"
	}
	return cfg
}
