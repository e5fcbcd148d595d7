// SPDX-License-Identifier: MIT

// Package prefs persists small string preferences per namespace.
//
// It plays the role browser local storage plays for a static site: the
// theme choice lives under a visitor's namespace and saved portfolio
// documents live under the site namespace.
package prefs

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("preference not found")

// SiteNamespace holds values shared by every visitor.
const SiteNamespace = "_site"

// Well-known keys.
const (
	KeyTheme     = "portfolio-theme"
	KeyPortfolio = "portfolio_config"
)

// Store is a namespaced key-value store.
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
	// Ping verifies the backend is usable.
	Ping(ctx context.Context) error
	Close() error
}
