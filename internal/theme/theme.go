// SPDX-License-Identifier: MIT

// Package theme tracks each visitor's dark/light preference.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTheme is returned for anything other than "dark" or "light".
var ErrInvalidTheme = errors.New("invalid theme")

// Theme is the page colour scheme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Parse accepts "dark" or "light", case-insensitively.
func Parse(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Dark, Light:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Valid reports whether t is dark or light.
func (t Theme) Valid() bool { return t == Dark || t == Light }

// Opposite returns the theme a toggle switches to.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Icon is the toggle button glyph. It shows the theme a click switches to.
type Icon struct {
	Class string `json:"class"`
	Color string `json:"color"`
}

// IconFor returns the toggle icon for the active theme.
func IconFor(t Theme) Icon {
	if t == Dark {
		return Icon{Class: "fas fa-sun", Color: "#f59e0b"}
	}
	return Icon{Class: "fas fa-moon", Color: "#0f172a"}
}

// FromHint maps a Sec-CH-Prefers-Color-Scheme header value to a theme.
// Unknown hints return false.
func FromHint(hint string) (Theme, bool) {
	t, err := Parse(strings.Trim(hint, `"`))
	if err != nil {
		return "", false
	}
	return t, true
}
