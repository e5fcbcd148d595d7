// SPDX-License-Identifier: MIT

// Package net holds URL helpers for remote document sources.
package net

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotHTTPURL is returned by ParseHTTPURL for anything but an absolute
// http(s) URL.
var ErrNotHTTPURL = errors.New("not an http(s) url")

// IsHTTPURL reports whether s looks like an http or https URL. It does not
// validate the rest of the URL.
func IsHTTPURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ParseHTTPURL parses an absolute http(s) URL with a host and no fragment.
func ParseHTTPURL(s string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotHTTPURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrNotHTTPURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrNotHTTPURL)
	}
	if u.Fragment != "" {
		return nil, fmt.Errorf("%w: fragments not allowed", ErrNotHTTPURL)
	}
	return u, nil
}

// Redact strips credentials and the query string so a source can be logged.
// Non-URL input is returned unchanged.
func Redact(raw string) string {
	if !IsHTTPURL(raw) {
		return raw
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "invalid-url-redacted"
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}
