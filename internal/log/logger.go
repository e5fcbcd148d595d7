// SPDX-License-Identifier: MIT

// Package log wraps a process-wide zerolog logger with folio's field names.
package log

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the level, sink and static fields of the global logger.
// Zero values fall back to LOG_LEVEL, stdout and the "folio" service name.
type Config struct {
	Level   string
	Output  io.Writer
	Service string
	Version string
}

var base atomic.Pointer[zerolog.Logger]

// Configure replaces the global logger. It is safe to call again once
// settings are known; loggers derived earlier keep the old sink.
func Configure(cfg Config) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	service := firstNonEmpty(cfg.Service, os.Getenv("LOG_SERVICE"), "folio")
	version := firstNonEmpty(cfg.Version, os.Getenv("VERSION"))

	l := zerolog.New(out).With().
		Timestamp().
		Str("service", service).
		Str("version", version).
		Logger()
	base.Store(&l)
}

func parseLevel(level string) zerolog.Level {
	for _, candidate := range []string{level, os.Getenv("LOG_LEVEL")} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if parsed, err := zerolog.ParseLevel(strings.ToLower(candidate)); err == nil {
			return parsed
		}
		break
	}
	return zerolog.InfoLevel
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Base returns a copy of the global logger.
func Base() zerolog.Logger {
	return *base.Load()
}

// L returns the global logger for one-off call sites.
func L() *zerolog.Logger {
	l := Base()
	return &l
}

// WithComponent tags a child of the global logger with a component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}

func init() {
	Configure(Config{})
}
