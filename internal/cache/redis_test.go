// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mr, c := setupRedis(t)

	c.Set(ctx, "page:3:light", []byte("<html lang=en>"), 5*time.Minute)
	got, ok := c.Get(ctx, "page:3:light")
	require.True(t, ok)
	assert.Equal(t, []byte("<html lang=en>"), got)

	assert.True(t, mr.Exists("test:page:3:light"))
	assert.Equal(t, 5*time.Minute, mr.TTL("test:page:3:light"))

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 1, stats.CurrentSize)
}

func TestRedisCache_Expiration(t *testing.T) {
	ctx := context.Background()
	mr, c := setupRedis(t)

	c.Set(ctx, "k", []byte("v"), time.Second)
	mr.FastForward(2 * time.Second)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisCache_ClearKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	mr, c := setupRedis(t)

	require.NoError(t, mr.Set("other:key", "keep"))
	c.Set(ctx, "a", []byte("1"), time.Minute)
	c.Set(ctx, "b", []byte("2"), time.Minute)
	c.Delete(ctx, "a")
	assert.False(t, mr.Exists("test:a"))

	c.Clear(ctx)
	assert.False(t, mr.Exists("test:b"))
	assert.True(t, mr.Exists("other:key"))
}

func TestRedisCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr, c := setupRedis(t)
	require.NoError(t, c.HealthCheck(ctx))

	mr.Close()
	c.Set(ctx, "k", []byte("v"), time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, c.HealthCheck(ctx))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
