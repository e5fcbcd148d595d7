// SPDX-License-Identifier: MIT

package config

import "time"

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		DataDir:  "./data",
		LogLevel: "info",
		Server: ServerConfig{
			ListenAddr:      ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:    true,
			ListenAddr: ":9090",
		},
		Portfolio: PortfolioConfig{
			Source:       "config/config.json",
			Watch:        true,
			FetchTimeout: 5 * time.Second,
		},
		Assets:  AssetsConfig{Root: "./assets"},
		Storage: StorageConfig{Backend: "sqlite"},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     5 * time.Minute,
		},
		Theme: ThemeConfig{
			Default:    "dark",
			CookieName: "folio_visitor",
		},
		API: APIConfig{RateLimit: 60},
		Clock: ClockConfig{
			Zone:  "Asia/Kolkata",
			Label: "IST",
		},
		Telemetry: TelemetryConfig{
			Exporter:     "http",
			Endpoint:     "localhost:4318",
			SamplingRate: 1.0,
		},
	}
}
