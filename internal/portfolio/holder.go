// SPDX-License-Identifier: MIT

package portfolio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/metrics"
	"github.com/ManuGH/folio/internal/prefs"
	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// ErrNoStoredDocument is returned by Restore when nothing was saved.
var ErrNoStoredDocument = errors.New("no saved portfolio document")

// Snapshot is one immutable version of the document. Callers must not
// modify Tree; use Holder.Update instead.
type Snapshot struct {
	Tree     map[string]any
	Doc      Document
	Origin   Origin
	Revision uint64
	LoadedAt time.Time
	Missing  []string
	// Fingerprint is a content hash of Tree; equal documents share it
	// across revisions and restarts.
	Fingerprint string
}

// Fallback reports whether the built-in document is active.
func (s *Snapshot) Fallback() bool { return s.Origin == OriginFallback }

// Holder owns the current document. Every change produces a new Snapshot
// with a higher revision; readers never see a partially applied update.
type Holder struct {
	mu       sync.RWMutex
	current  *Snapshot
	revision uint64

	loader *Loader
	store  prefs.Store
	logger zerolog.Logger
	now    func() time.Time

	watchMu  sync.Mutex
	watching bool
	stop     context.CancelFunc
	done     chan struct{}

	listenMu  sync.RWMutex
	listeners []chan<- *Snapshot
}

// HolderOption customises a Holder.
type HolderOption func(*Holder)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) HolderOption {
	return func(h *Holder) { h.now = now }
}

// WithLogger replaces the component logger.
func WithLogger(logger zerolog.Logger) HolderOption {
	return func(h *Holder) { h.logger = logger }
}

// NewHolder creates a holder serving the fallback document until Load runs.
// store may be nil, in which case Save and Restore fail.
func NewHolder(loader *Loader, store prefs.Store, opts ...HolderOption) *Holder {
	h := &Holder{
		loader: loader,
		store:  store,
		logger: xlog.WithComponent("portfolio"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.swap(Fallback(), OriginFallback, nil)
	return h
}

// Current returns the active snapshot.
func (h *Holder) Current() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// DocumentStatus reports the active revision, whether the fallback is
// served and which required sections are missing.
func (h *Holder) DocumentStatus() (uint64, bool, []string) {
	snap := h.Current()
	return snap.Revision, snap.Fallback(), snap.Missing
}

// Loader returns the source loader.
func (h *Holder) Loader() *Loader { return h.loader }

// Load performs the initial load. It never fails: on error the fallback
// document stays active.
func (h *Holder) Load(ctx context.Context) *Snapshot {
	res := h.loader.Load(ctx)
	return h.swap(res.Tree, res.Origin, res.Missing)
}

// Reload re-reads the source. Unlike Load, a failure keeps the current
// document and is returned.
func (h *Holder) Reload(ctx context.Context) error {
	h.logger.Info().Str(xlog.FieldEvent, "portfolio.reload_start").Msg("reloading portfolio document")

	tree, err := h.loader.Fetch(ctx)
	if err != nil {
		metrics.IncPortfolioLoad(string(h.loader.origin()), metrics.ResultError)
		h.logger.Error().
			Err(err).
			Str(xlog.FieldEvent, "portfolio.reload_failed").
			Str(xlog.FieldSource, h.loader.displaySource()).
			Msg("failed to reload portfolio document")
		return fmt.Errorf("reload portfolio: %w", err)
	}
	metrics.IncPortfolioLoad(string(h.loader.origin()), metrics.ResultSuccess)

	snap := h.swap(tree, h.loader.origin(), Validate(h.logger, tree))
	h.logger.Info().
		Str(xlog.FieldEvent, "portfolio.reload_success").
		Uint64(xlog.FieldRevision, snap.Revision).
		Msg("portfolio document reloaded")
	return nil
}

// Get returns a copy of the value at the dotted key, or def when it is
// missing or falsy.
func (h *Holder) Get(key string, def any) any {
	return Clone(GetOr(h.Current().Tree, key, def))
}

// Update assigns value at the dotted key and publishes a new revision.
func (h *Holder) Update(key string, value any) error {
	v, err := normalize(value)
	if err != nil {
		return err
	}

	h.mu.Lock()
	tree := cloneTree(h.current.Tree)
	if err := Assign(tree, key, v); err != nil {
		h.mu.Unlock()
		return err
	}
	snap := h.swapLocked(tree, OriginUpdate, MissingSections(tree))
	h.mu.Unlock()
	h.notify(snap)

	encoded, _ := json.Marshal(v)
	h.logger.Info().
		Str(xlog.FieldEvent, "portfolio.updated").
		Str(xlog.FieldKey, key).
		Uint64(xlog.FieldRevision, snap.Revision).
		Msgf("Config updated: %s = %s", key, encoded)
	return nil
}

// Marshal serialises the current document with two-space indentation.
func (h *Holder) Marshal() ([]byte, error) {
	return json.MarshalIndent(h.Current().Tree, "", "  ")
}

// Save stores the current document in the preference store.
func (h *Holder) Save(ctx context.Context) error {
	if h.store == nil {
		return errors.New("save portfolio: no preference store")
	}
	data, err := h.Marshal()
	if err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}
	if err := h.store.Set(ctx, prefs.SiteNamespace, prefs.KeyPortfolio, string(data)); err != nil {
		h.logger.Error().Err(err).Str(xlog.FieldEvent, "portfolio.save_failed").Msg("failed to save configuration")
		return fmt.Errorf("save portfolio: %w", err)
	}
	h.logger.Info().Str(xlog.FieldEvent, "portfolio.saved").Msg("configuration saved to preference store")
	return nil
}

// Restore replaces the document with the saved one. It returns
// ErrNoStoredDocument when nothing was saved; a corrupt saved document is
// an error and leaves the current document in place.
func (h *Holder) Restore(ctx context.Context) error {
	if h.store == nil {
		return errors.New("restore portfolio: no preference store")
	}
	raw, err := h.store.Get(ctx, prefs.SiteNamespace, prefs.KeyPortfolio)
	if errors.Is(err, prefs.ErrNotFound) {
		return ErrNoStoredDocument
	}
	if err != nil {
		return fmt.Errorf("restore portfolio: %w", err)
	}

	tree, err := Parse([]byte(raw))
	if err != nil {
		metrics.IncPortfolioLoad(string(OriginStorage), metrics.ResultError)
		h.logger.Error().Err(err).Str(xlog.FieldEvent, "portfolio.restore_failed").Msg("failed to load configuration from storage")
		return fmt.Errorf("restore portfolio: %w", err)
	}
	metrics.IncPortfolioLoad(string(OriginStorage), metrics.ResultSuccess)

	snap := h.swap(tree, OriginStorage, MissingSections(tree))
	h.logger.Info().
		Str(xlog.FieldEvent, "portfolio.restored").
		Uint64(xlog.FieldRevision, snap.Revision).
		Msg("configuration loaded from preference store")
	return nil
}

// LoadFromStorage is Restore with absence treated as success.
func (h *Holder) LoadFromStorage(ctx context.Context) error {
	if err := h.Restore(ctx); err != nil && !errors.Is(err, ErrNoStoredDocument) {
		return err
	}
	return nil
}

// WriteFile atomically replaces path with the current document.
func (h *Holder) WriteFile(path string) error {
	data, err := h.Marshal()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write portfolio: %w", err)
	}
	return nil
}

// RegisterListener subscribes ch to new snapshots. Sends never block; a
// full channel misses the notification.
func (h *Holder) RegisterListener(ch chan<- *Snapshot) {
	h.listenMu.Lock()
	defer h.listenMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notify(snap *Snapshot) {
	h.listenMu.RLock()
	defer h.listenMu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- snap:
		default:
			h.logger.Warn().
				Str(xlog.FieldEvent, "portfolio.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}

func fingerprint(tree map[string]any) string {
	data, err := json.Marshal(tree)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

func (h *Holder) swap(tree map[string]any, origin Origin, missing []string) *Snapshot {
	h.mu.Lock()
	snap := h.swapLocked(tree, origin, missing)
	h.mu.Unlock()
	h.notify(snap)
	return snap
}

func (h *Holder) swapLocked(tree map[string]any, origin Origin, missing []string) *Snapshot {
	doc, err := Decode(tree)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str(xlog.FieldEvent, "portfolio.decode_partial").
			Msg("portfolio document has mistyped fields, rendering what decoded")
	}
	h.revision++
	snap := &Snapshot{
		Tree:        tree,
		Doc:         doc,
		Origin:      origin,
		Revision:    h.revision,
		LoadedAt:    h.now(),
		Missing:     missing,
		Fingerprint: fingerprint(tree),
	}
	h.current = snap
	metrics.RecordPortfolioActive(snap.Revision, snap.Fallback())
	return snap
}
