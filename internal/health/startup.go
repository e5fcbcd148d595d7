// SPDX-License-Identifier: MIT

package health

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckDataDir makes sure dir exists (creating it) and is writable.
func CheckDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dir)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return fmt.Errorf("directory is not writable: %s (error: %w)", dir, err)
	}
	_ = os.Remove(probe)
	return nil
}
