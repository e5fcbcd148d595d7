// SPDX-License-Identifier: MIT

package prefs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Open builds the configured backend, creating parent directories as needed.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("prefs: mkdir: %w", err)
		}
		return OpenSQLite(path)
	case BackendBadger:
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("prefs: mkdir: %w", err)
		}
		return OpenBadger(path)
	default:
		return nil, fmt.Errorf("prefs: unknown backend %q", backend)
	}
}
