// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	defer func() { _ = c.Close() }()

	c.Set(ctx, "page:1:dark", []byte("<html>"), time.Minute)
	got, ok := c.Get(ctx, "page:1:dark")
	require.True(t, ok)
	assert.Equal(t, []byte("<html>"), got)

	_, ok = c.Get(ctx, "page:1:light")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 1, stats.CurrentSize)
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(0)
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", []byte("v"), time.Second)
	now = now.Add(2 * time.Second)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.deleteExpired())
	assert.Equal(t, int64(1), c.Stats().Evictions)
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	c.Set(ctx, "a", []byte("1"), time.Minute)
	c.Set(ctx, "b", []byte("2"), time.Minute)
	c.Delete(ctx, "a")
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)

	c.Clear(ctx)
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestMemoryCache_JanitorStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := NewMemoryCache(5 * time.Millisecond)
	c.Set(context.Background(), "k", []byte("v"), time.Millisecond)

	assert.Eventually(t, func() bool { return c.Stats().CurrentSize == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestNoOpCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoOpCache()
	c.Set(ctx, "k", []byte("v"), time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, Stats{}, c.Stats())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, BackendMemory, RedisConfig{}, 0)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)
	_ = c.Close()

	c, err = Open(ctx, BackendNone, RedisConfig{}, 0)
	require.NoError(t, err)
	assert.IsType(t, noOpCache{}, c)

	_, err = Open(ctx, "memcached", RedisConfig{}, 0)
	assert.Error(t, err)
}
