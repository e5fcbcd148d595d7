// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors for folio's domain events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	portfolioLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_portfolio_loads_total",
		Help: "Portfolio document loads by source and result",
	}, []string{"source", "result"}) // source=file|remote|storage, result=success|fallback|error

	portfolioRevision = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "folio_portfolio_revision",
		Help: "Revision of the active portfolio document",
	})

	portfolioFallbackActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "folio_portfolio_fallback_active",
		Help: "Whether the built-in fallback document is active (1) or not (0)",
	})

	themeChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_theme_changes_total",
		Help: "Theme changes by resulting theme and action",
	}, []string{"theme", "action"}) // action=toggle|set

	renderDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folio_render_duration_seconds",
		Help:    "Time spent rendering the portfolio page",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
	})

	pageCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_page_cache_total",
		Help: "Rendered page cache lookups by result",
	}, []string{"result"}) // result=hit|miss|error

	experienceYears = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "folio_experience_years",
		Help: "Experience years shown on the page (last render)",
	})
)

// Load results.
const (
	ResultSuccess  = "success"
	ResultFallback = "fallback"
	ResultError    = "error"
)

func IncPortfolioLoad(source, result string) {
	portfolioLoadsTotal.WithLabelValues(source, result).Inc()
}

// RecordPortfolioActive publishes the revision now being served.
func RecordPortfolioActive(revision uint64, fallback bool) {
	portfolioRevision.Set(float64(revision))
	if fallback {
		portfolioFallbackActive.Set(1)
	} else {
		portfolioFallbackActive.Set(0)
	}
}

func IncThemeChange(theme, action string) {
	themeChangesTotal.WithLabelValues(theme, action).Inc()
}

func ObserveRender(seconds float64) { renderDurationSeconds.Observe(seconds) }

func IncPageCache(result string) { pageCacheTotal.WithLabelValues(result).Inc() }

func RecordExperienceYears(years int) { experienceYears.Set(float64(years)) }
