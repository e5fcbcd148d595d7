// SPDX-License-Identifier: MIT

// Package render turns the portfolio document into the HTML page.
//
// Every document field passes through html/template's contextual escaping.
// Rendered pages are cached per document fingerprint and theme.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/ManuGH/folio/internal/cache"
	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/metrics"
	"github.com/ManuGH/folio/internal/portfolio"
	"github.com/ManuGH/folio/internal/telemetry"
	"github.com/ManuGH/folio/internal/theme"
	"github.com/ManuGH/folio/internal/version"
	"github.com/rs/zerolog"
)

//go:embed templates/page.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded stylesheet and script, rooted so that
// "css/portfolio.css" resolves.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Options configure a Renderer.
type Options struct {
	Cache    cache.Cache
	CacheTTL time.Duration
	Clock    ClockConfig
	Now      func() time.Time
}

// Renderer executes the page template.
type Renderer struct {
	cache  cache.Cache
	ttl    time.Duration
	clock  ClockConfig
	now    func() time.Time
	logger zerolog.Logger
}

// New creates a renderer. A nil cache disables caching.
func New(opts Options) *Renderer {
	r := &Renderer{
		cache:  opts.Cache,
		ttl:    opts.CacheTTL,
		clock:  opts.Clock,
		now:    opts.Now,
		logger: xlog.WithComponent("render"),
	}
	if r.cache == nil {
		r.cache = cache.NewNoOpCache()
	}
	if r.ttl <= 0 {
		r.ttl = 5 * time.Minute
	}
	if r.clock.Zone == nil {
		r.clock = DefaultClock()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// CacheKey identifies a rendered page. The year is part of the key because
// the experience estimate depends on it.
func CacheKey(snap *portfolio.Snapshot, t theme.Theme, year int) string {
	return fmt.Sprintf("page:%s:%s:%s:%d", version.Version, snap.Fingerprint, t, year)
}

// Render returns the page for snap in theme t, from cache when possible.
func (r *Renderer) Render(ctx context.Context, snap *portfolio.Snapshot, t theme.Theme) ([]byte, error) {
	now := r.now()
	key := CacheKey(snap, t, now.Year())

	ctx, span := telemetry.Tracer("folio/render").Start(ctx, "render.page")
	defer span.End()

	if page, ok := r.cache.Get(ctx, key); ok {
		metrics.IncPageCache("hit")
		span.SetAttributes(telemetry.RenderAttributes(t.String(), snap.Revision, "hit")...)
		return page, nil
	}
	metrics.IncPageCache("miss")
	span.SetAttributes(telemetry.RenderAttributes(t.String(), snap.Revision, "miss")...)

	start := time.Now()
	page := Build(snap.Doc, t, now, r.clock)
	var buf bytes.Buffer
	if err := Execute(&buf, page); err != nil {
		telemetry.RecordError(span, err, "template")
		return nil, err
	}
	metrics.ObserveRender(time.Since(start).Seconds())
	metrics.RecordExperienceYears(page.Experience.Years)

	out := buf.Bytes()
	r.cache.Set(ctx, key, out, r.ttl)

	r.logger.Debug().
		Str(xlog.FieldEvent, "render.page").
		Uint64(xlog.FieldRevision, snap.Revision).
		Str(xlog.FieldTheme, t.String()).
		Int("bytes", len(out)).
		Msg("rendered page")
	return out, nil
}

// Invalidate drops every cached page.
func (r *Renderer) Invalidate(ctx context.Context) {
	r.cache.Clear(ctx)
}

// Execute writes page as HTML.
func Execute(w io.Writer, page Page) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
