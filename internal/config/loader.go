// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ManuGH/folio/internal/prefs"
	"gopkg.in/yaml.v3"
)

// Loader resolves an AppConfig from defaults, an optional YAML file and the environment.
type Loader struct {
	configPath string
	version    string

	// ConsumedEnvKeys records every FOLIO_* key the loader looked at.
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a loader. configPath may be empty.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// Load applies defaults, then the file, then the environment, then validates.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	l.mergeEnv(&cfg)
	resolve(&cfg)
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile decodes a YAML file over cfg. Keys absent from the file keep
// their current value; unknown keys are an error.
func loadFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- the settings path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "not found in type") {
			return fmt.Errorf("strict config parse error: %w: %v", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

func (l *Loader) mergeEnv(cfg *AppConfig) {
	str := func(key string, dst *string) {
		l.ConsumedEnvKeys[key] = struct{}{}
		*dst = ParseString(key, *dst)
	}
	dur := func(key string, dst *time.Duration) {
		l.ConsumedEnvKeys[key] = struct{}{}
		*dst = ParseDuration(key, *dst)
	}
	boolean := func(key string, dst *bool) {
		l.ConsumedEnvKeys[key] = struct{}{}
		*dst = ParseBool(key, *dst)
	}
	integer := func(key string, dst *int) {
		l.ConsumedEnvKeys[key] = struct{}{}
		*dst = ParseInt(key, *dst)
	}

	str("FOLIO_DATA", &cfg.DataDir)
	str("FOLIO_LOG_LEVEL", &cfg.LogLevel)

	str("FOLIO_LISTEN", &cfg.Server.ListenAddr)
	dur("FOLIO_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	dur("FOLIO_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	dur("FOLIO_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	dur("FOLIO_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	boolean("FOLIO_METRICS_ENABLED", &cfg.Metrics.Enabled)
	str("FOLIO_METRICS_LISTEN", &cfg.Metrics.ListenAddr)

	str("FOLIO_PORTFOLIO_SOURCE", &cfg.Portfolio.Source)
	boolean("FOLIO_PORTFOLIO_WATCH", &cfg.Portfolio.Watch)
	dur("FOLIO_FETCH_TIMEOUT", &cfg.Portfolio.FetchTimeout)

	str("FOLIO_ASSETS_ROOT", &cfg.Assets.Root)

	str("FOLIO_STORAGE_BACKEND", &cfg.Storage.Backend)
	str("FOLIO_STORAGE_PATH", &cfg.Storage.Path)

	str("FOLIO_CACHE_BACKEND", &cfg.Cache.Backend)
	str("FOLIO_REDIS_ADDR", &cfg.Cache.RedisAddr)
	integer("FOLIO_REDIS_DB", &cfg.Cache.RedisDB)
	dur("FOLIO_CACHE_TTL", &cfg.Cache.TTL)

	str("FOLIO_THEME_DEFAULT", &cfg.Theme.Default)
	str("FOLIO_THEME_COOKIE", &cfg.Theme.CookieName)

	str("FOLIO_API_TOKEN", &cfg.API.Token)
	integer("FOLIO_RATE_LIMIT", &cfg.API.RateLimit)
	l.ConsumedEnvKeys["FOLIO_ALLOWED_ORIGINS"] = struct{}{}
	if v := ParseString("FOLIO_ALLOWED_ORIGINS", ""); v != "" {
		cfg.API.AllowedOrigins = splitList(v)
	}

	str("FOLIO_CLOCK_ZONE", &cfg.Clock.Zone)
	str("FOLIO_CLOCK_LABEL", &cfg.Clock.Label)

	boolean("FOLIO_OTEL_ENABLED", &cfg.Telemetry.Enabled)
	str("FOLIO_OTEL_EXPORTER", &cfg.Telemetry.Exporter)
	str("FOLIO_OTEL_ENDPOINT", &cfg.Telemetry.Endpoint)
	l.ConsumedEnvKeys["FOLIO_OTEL_SAMPLING_RATE"] = struct{}{}
	cfg.Telemetry.SamplingRate = ParseFloat("FOLIO_OTEL_SAMPLING_RATE", cfg.Telemetry.SamplingRate)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// resolve fills derived values once every source has been applied.
func resolve(cfg *AppConfig) {
	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Theme.Default = strings.ToLower(cfg.Theme.Default)
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Backend {
		case prefs.BackendSQLite:
			cfg.Storage.Path = filepath.Join(cfg.DataDir, "prefs.db")
		case prefs.BackendBadger:
			cfg.Storage.Path = filepath.Join(cfg.DataDir, "prefs")
		}
	}
}
