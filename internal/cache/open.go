// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Open builds the configured cache backend.
func Open(ctx context.Context, backend string, redisCfg RedisConfig, cleanupInterval time.Duration) (Cache, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryCache(cleanupInterval), nil
	case BackendRedis:
		return NewRedisCache(ctx, redisCfg)
	case BackendNone:
		return NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", backend)
	}
}
