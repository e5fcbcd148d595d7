// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/rs/zerolog"
)

// ParseString reads a string from the environment or returns def.
// Empty variables count as unset.
func ParseString(key, def string) string {
	return parseStringWithLogger(xlog.WithComponent("config"), key, def)
}

func parseStringWithLogger(logger zerolog.Logger, key, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		logger.Debug().Str("key", key).Str("source", "default").Msg("using default value")
		return def
	}
	lower := strings.ToLower(key)
	if strings.Contains(lower, "token") || strings.Contains(lower, "password") {
		logger.Debug().Str("key", key).Str("source", "environment").Bool("sensitive", true).Msg("using environment variable")
	} else {
		logger.Debug().Str("key", key).Str("value", value).Str("source", "environment").Msg("using environment variable")
	}
	return value
}

// ParseInt reads an integer from the environment.
// Unparseable values are logged and def is returned.
func ParseInt(key string, def int) int {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		warnInvalid(key, v, "integer")
		return def
	}
	return i
}

// ParseDuration reads a Go duration ("5s", "2m") from the environment.
func ParseDuration(key string, def time.Duration) time.Duration {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		warnInvalid(key, v, "duration")
		return def
	}
	return d
}

// ParseBool reads a boolean accepted by strconv.ParseBool.
func ParseBool(key string, def bool) bool {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		warnInvalid(key, v, "boolean")
		return def
	}
	return b
}

// ParseFloat reads a float64 from the environment.
func ParseFloat(key string, def float64) float64 {
	v, ok := lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		warnInvalid(key, v, "float")
		return def
	}
	return f
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	logger := xlog.WithComponent("config")
	logger.Debug().
		Str("key", key).
		Str("value", v).
		Str("source", "environment").
		Msg("using environment variable")
	return strings.TrimSpace(v), true
}

func warnInvalid(key, value, kind string) {
	logger := xlog.WithComponent("config")
	logger.Warn().
		Str("key", key).
		Str("value", value).
		Msgf("invalid %s in environment variable, using default", kind)
}
