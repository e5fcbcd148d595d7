// SPDX-License-Identifier: MIT

package portfolio

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/fsnotify/fsnotify"
)

// DebounceInterval coalesces bursts of editor writes into one reload.
const DebounceInterval = 500 * time.Millisecond

// StartWatcher reloads the document when its file changes. Remote sources
// are not watched. The parent directory is watched so atomic
// replace-by-rename saves are seen as well.
func (h *Holder) StartWatcher(ctx context.Context) error {
	if h.loader.Remote() {
		h.logger.Info().
			Str(xlog.FieldEvent, "portfolio.watcher_disabled").
			Msg("portfolio watcher disabled for remote source")
		return nil
	}

	h.watchMu.Lock()
	defer h.watchMu.Unlock()
	if h.watching {
		return nil
	}

	path, err := filepath.Abs(h.loader.Source())
	if err != nil {
		return fmt.Errorf("resolve document path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch document directory: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	h.stop = cancel
	h.done = make(chan struct{})
	h.watching = true

	h.logger.Info().
		Str(xlog.FieldEvent, "portfolio.watcher_started").
		Str(xlog.FieldPath, path).
		Msg("watching portfolio document for changes")

	go h.watchLoop(ctx, watcher, path, h.done)
	return nil
}

func (h *Holder) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, done chan struct{}) {
	defer close(done)
	defer func() { _ = watcher.Close() }()

	debounce := time.NewTimer(DebounceInterval)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(xlog.FieldEvent, "portfolio.watcher_stopped").Msg("portfolio watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				h.logger.Debug().
					Str(xlog.FieldEvent, "portfolio.file_changed").
					Str("op", event.Op.String()).
					Msg("portfolio document changed")
				debounce.Reset(DebounceInterval)
			}

		case <-debounce.C:
			if err := h.Reload(ctx); err != nil {
				h.logger.Error().
					Err(err).
					Str(xlog.FieldEvent, "portfolio.auto_reload_failed").
					Msg("automatic portfolio reload failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().
				Err(err).
				Str(xlog.FieldEvent, "portfolio.watcher_error").
				Msg("portfolio watcher error")
		}
	}
}

// Stop stops the watcher and waits for it to exit.
func (h *Holder) Stop() {
	h.watchMu.Lock()
	defer h.watchMu.Unlock()
	if !h.watching {
		return
	}
	h.stop()
	<-h.done
	h.watching = false
}
