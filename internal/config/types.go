// SPDX-License-Identifier: MIT

package config

import "time"

// AppConfig is the complete daemon configuration.
type AppConfig struct {
	DataDir   string          `yaml:"dataDir"`
	LogLevel  string          `yaml:"logLevel"`
	Server    ServerConfig    `yaml:"server"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Portfolio PortfolioConfig `yaml:"portfolio"`
	Assets    AssetsConfig    `yaml:"assets"`
	Storage   StorageConfig   `yaml:"storage"`
	Cache     CacheConfig     `yaml:"cache"`
	Theme     ThemeConfig     `yaml:"theme"`
	API       APIConfig       `yaml:"api"`
	Clock     ClockConfig     `yaml:"clock"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Version is stamped from the binary, never read from file or env.
	Version string `yaml:"-"`
}

// ServerConfig holds the public HTTP listener settings.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listenAddr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listenAddr"`
}

type PortfolioConfig struct {
	// Source is a file path or an http(s) URL.
	Source       string        `yaml:"source"`
	Watch        bool          `yaml:"watch"`
	FetchTimeout time.Duration `yaml:"fetchTimeout"`
}

type AssetsConfig struct {
	Root string `yaml:"root"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	// Path defaults under DataDir when empty.
	Path string `yaml:"path"`
}

type CacheConfig struct {
	Backend   string        `yaml:"backend"`
	RedisAddr string        `yaml:"redisAddr"`
	RedisDB   int           `yaml:"redisDB"`
	TTL       time.Duration `yaml:"ttl"`
}

type ThemeConfig struct {
	Default    string `yaml:"default"`
	CookieName string `yaml:"cookieName"`
}

type APIConfig struct {
	// Token guards the write endpoints; empty disables them.
	Token string `yaml:"token"`
	// RateLimit is requests per minute per client on write endpoints.
	RateLimit int `yaml:"rateLimit"`
	// AllowedOrigins may call the API cross-origin; same-origin is always allowed.
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type ClockConfig struct {
	Zone  string `yaml:"zone"`
	Label string `yaml:"label"`
}

type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
}
