// SPDX-License-Identifier: MIT

// Package config loads folio's daemon settings.
//
// Precedence, lowest to highest: built-in defaults, the YAML settings file
// (strict: unknown keys are rejected), FOLIO_* environment variables. The
// result is validated before use. The portfolio document itself is not a
// setting; see package portfolio.
package config
