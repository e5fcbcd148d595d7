// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for folio spans. HTTP spans use otelhttp's own keys.
const (
	PortfolioSourceKey   = "portfolio.source"
	PortfolioRevisionKey = "portfolio.revision"
	PortfolioOriginKey   = "portfolio.origin"

	ThemeKey       = "theme.value"
	RenderCacheKey = "render.cache"

	ErrorTypeKey = "error.type"
)

// LoadAttributes describes a portfolio document load.
func LoadAttributes(origin, source string, revision uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(PortfolioOriginKey, origin),
		attribute.String(PortfolioSourceKey, source),
		attribute.Int64(PortfolioRevisionKey, int64(revision)),
	}
}

// RenderAttributes describes a page render.
func RenderAttributes(theme string, revision uint64, cache string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(ThemeKey, theme),
		attribute.Int64(PortfolioRevisionKey, int64(revision)),
		attribute.String(RenderCacheKey, cache),
	}
}

// RecordError marks the span failed. A nil error is ignored.
func RecordError(span trace.Span, err error, errType string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errType != "" {
		span.SetAttributes(attribute.String(ErrorTypeKey, errType))
	}
}
