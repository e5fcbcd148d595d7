// SPDX-License-Identifier: MIT

// Package fs confines file access to a root directory.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEscapesRoot is returned when a path resolves outside its root.
var ErrEscapesRoot = errors.New("path escapes root")

// ConfineRelPath joins root and relTarget and returns the resolved path,
// failing unless the result (after symlink resolution) stays under root.
// relTarget must be relative and must not contain backslashes.
func ConfineRelPath(root, relTarget string) (string, error) {
	if strings.Contains(relTarget, "\\") {
		return "", fmt.Errorf("path contains backslash: %s", relTarget)
	}
	cleanRel := filepath.Clean(relTarget)
	if filepath.IsAbs(cleanRel) {
		return "", fmt.Errorf("target path must be relative: %s", relTarget)
	}
	if isParentRef(cleanRel) {
		return "", fmt.Errorf("%w: %s", ErrEscapesRoot, relTarget)
	}

	realRoot, err := resolveRoot(root)
	if err != nil {
		return "", err
	}
	return within(realRoot, filepath.Join(realRoot, cleanRel))
}

// IsRegularFile returns nil only for an existing regular file.
func IsRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	return nil
}

func resolveRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root path: %w", err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return "", err
		}
		return absRoot, nil
	}
	return realRoot, nil
}

// within resolves symlinks on fullPath (or its parent when fullPath is
// missing) and checks the result against realRoot.
func within(realRoot, fullPath string) (string, error) {
	realPath, err := resolve(fullPath)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(realRoot, realPath)
	if err != nil {
		return "", fmt.Errorf("rel computation failed: %w", err)
	}
	if isParentRef(rel) {
		return "", fmt.Errorf("%w: %s", ErrEscapesRoot, realPath)
	}
	return realPath, nil
}

func resolve(fullPath string) (string, error) {
	if _, err := os.Lstat(fullPath); err == nil {
		rp, err := filepath.EvalSymlinks(fullPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path: %w", err)
		}
		return rp, nil
	}

	dir := filepath.Dir(fullPath)
	rp, err := filepath.EvalSymlinks(dir)
	if err == nil {
		return filepath.Join(rp, filepath.Base(fullPath)), nil
	}
	if _, statErr := os.Stat(dir); statErr == nil {
		return "", fmt.Errorf("failed to resolve parent path: %w", err)
	}
	return fullPath, nil
}

func isParentRef(p string) bool {
	return p == ".." || strings.HasPrefix(p, ".."+string(filepath.Separator))
}
