// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/folio/internal/cache"
	"github.com/ManuGH/folio/internal/portfolio"
	"github.com/ManuGH/folio/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_EscapesDocumentFields(t *testing.T) {
	doc := sampleDoc()
	doc.Personal.Name = `Jane <script>alert(1)</script>`
	doc.Projects[0].Description = `<img src=x onerror=alert(1)>`
	doc.Links.GitHub = "javascript:alert(1)"

	var buf bytes.Buffer
	require.NoError(t, Execute(&buf, Build(doc, theme.Dark, in2024, DefaultClock())))
	html := buf.String()

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.NotContains(t, html, "<img src=x")
	assert.NotContains(t, html, `href="javascript:`)
	assert.Contains(t, html, "&lt;img src=x onerror=alert(1)&gt;")
}

func TestExecute_PageSlots(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Execute(&buf, Build(sampleDoc(), theme.Dark, in2024, DefaultClock())))
	html := buf.String()

	assert.Contains(t, html, `<html lang="en" data-theme="dark">`)
	assert.Contains(t, html, "<title>Archit Verma | Portfolio</title>")
	assert.Contains(t, html, `<span class="highlight">Doe</span>`)
	// html/template escapes "+" in text
	assert.Contains(t, html, `<span id="expYears" class="stat-value">2&#43;</span>`)
	assert.Contains(t, html, `<i class="fas fa-sun" style="color: #f59e0b"></i>`)
	assert.Contains(t, html, `<div class="timeline-marker current">`)
	assert.Contains(t, html, `<i class="fas fa-rocket"></i> PRODUCTION`)
	assert.Contains(t, html, `style="width: 90%"`)
	assert.Contains(t, html, `href="/resume"`)
	assert.Contains(t, html, ">12:00:15 IST<")
	assert.Equal(t, 6, strings.Count(html, `class="architecture-layer"`))
	assert.Contains(t, html, `<span id="systemVersion">1.0.0</span>`)
}

type countingCache struct {
	cache.Cache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.sets++
	c.Cache.Set(ctx, key, value, ttl)
}

func TestRenderer_CachesPerFingerprintAndTheme(t *testing.T) {
	ctx := context.Background()
	mem := &countingCache{Cache: cache.NewMemoryCache(0)}
	r := New(Options{Cache: mem, Now: func() time.Time { return in2024 }})

	snap := &portfolio.Snapshot{Doc: sampleDoc(), Revision: 1, Fingerprint: "abc"}

	first, err := r.Render(ctx, snap, theme.Dark)
	require.NoError(t, err)
	second, err := r.Render(ctx, snap, theme.Dark)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, mem.sets)

	light, err := r.Render(ctx, snap, theme.Light)
	require.NoError(t, err)
	assert.NotEqual(t, first, light)
	assert.Equal(t, 2, mem.sets)

	changed := &portfolio.Snapshot{Doc: sampleDoc(), Revision: 2, Fingerprint: "def"}
	_, err = r.Render(ctx, changed, theme.Dark)
	require.NoError(t, err)
	assert.Equal(t, 3, mem.sets)

	r.Invalidate(ctx)
	assert.Equal(t, 0, mem.Stats().CurrentSize)
}

func TestCacheKey(t *testing.T) {
	snap := &portfolio.Snapshot{Fingerprint: "f00"}
	assert.NotEqual(t, CacheKey(snap, theme.Dark, 2024), CacheKey(snap, theme.Dark, 2025))
	assert.NotEqual(t, CacheKey(snap, theme.Dark, 2024), CacheKey(snap, theme.Light, 2024))
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"css/portfolio.css", "js/portfolio.js"} {
		data, err := fs.ReadFile(Static(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}
}
