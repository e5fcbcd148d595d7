// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	_ "time/tzdata" // clock zones resolve without system zoneinfo

	"github.com/ManuGH/folio/internal/cache"
	pnet "github.com/ManuGH/folio/internal/platform/net"
	"github.com/ManuGH/folio/internal/prefs"
	"github.com/ManuGH/folio/internal/theme"
	"github.com/ManuGH/folio/internal/validate"
)

// Validate checks a fully resolved configuration.
func Validate(cfg AppConfig) error {
	v := validate.New()

	if !validate.LogLevel(cfg.LogLevel).IsValid() {
		v.AddError("logLevel", "must be one of trace, debug, info, warn, error", cfg.LogLevel)
	}
	v.NotEmpty("dataDir", cfg.DataDir)

	v.ListenAddr("server.listenAddr", cfg.Server.ListenAddr)
	v.PositiveDuration("server.readTimeout", cfg.Server.ReadTimeout)
	v.PositiveDuration("server.writeTimeout", cfg.Server.WriteTimeout)
	v.PositiveDuration("server.idleTimeout", cfg.Server.IdleTimeout)
	v.PositiveDuration("server.shutdownTimeout", cfg.Server.ShutdownTimeout)

	if cfg.Metrics.Enabled {
		v.ListenAddr("metrics.listenAddr", cfg.Metrics.ListenAddr)
		if cfg.Metrics.ListenAddr == cfg.Server.ListenAddr {
			v.AddError("metrics.listenAddr", "must differ from server.listenAddr", cfg.Metrics.ListenAddr)
		}
	}

	v.NotEmpty("portfolio.source", cfg.Portfolio.Source)
	if IsRemoteSource(cfg.Portfolio.Source) {
		v.URL("portfolio.source", cfg.Portfolio.Source, []string{"http", "https"})
	}
	v.PositiveDuration("portfolio.fetchTimeout", cfg.Portfolio.FetchTimeout)

	v.OneOf("storage.backend", cfg.Storage.Backend, []string{prefs.BackendMemory, prefs.BackendSQLite, prefs.BackendBadger})
	if cfg.Storage.Backend != prefs.BackendMemory {
		v.NotEmpty("storage.path", cfg.Storage.Path)
	}

	v.OneOf("cache.backend", cfg.Cache.Backend, []string{cache.BackendMemory, cache.BackendRedis, cache.BackendNone})
	if cfg.Cache.Backend == cache.BackendRedis {
		v.NotEmpty("cache.redisAddr", cfg.Cache.RedisAddr)
	}
	v.Range("cache.redisDB", cfg.Cache.RedisDB, 0, 15)
	v.PositiveDuration("cache.ttl", cfg.Cache.TTL)

	if _, err := theme.Parse(cfg.Theme.Default); err != nil {
		v.AddError("theme.default", err.Error(), cfg.Theme.Default)
	}
	v.NotEmpty("theme.cookieName", cfg.Theme.CookieName)

	v.Positive("api.rateLimit", cfg.API.RateLimit)

	v.TimeZone("clock.zone", cfg.Clock.Zone)
	v.NotEmpty("clock.label", cfg.Clock.Label)

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		v.FloatRange("telemetry.samplingRate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// IsRemoteSource reports whether the portfolio source is fetched over HTTP.
func IsRemoteSource(source string) bool {
	return pnet.IsHTTPURL(source)
}
