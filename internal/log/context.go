// SPDX-License-Identifier: MIT

package log

import (
	"context"

	"github.com/rs/zerolog"
)

// correlation is the set of ids attached to one request.
type correlation struct {
	requestID string
	visitorID string
}

type correlationKey struct{}

func correlationFrom(ctx context.Context) correlation {
	if ctx == nil {
		return correlation{}
	}
	c, _ := ctx.Value(correlationKey{}).(correlation)
	return c
}

func withCorrelation(ctx context.Context, set func(*correlation)) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	c := correlationFrom(ctx)
	set(&c)
	return context.WithValue(ctx, correlationKey{}, c)
}

// ContextWithRequestID returns ctx carrying the request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return withCorrelation(ctx, func(c *correlation) { c.requestID = id })
}

// ContextWithVisitorID returns ctx carrying the visitor id, the preference
// namespace of the caller.
func ContextWithVisitorID(ctx context.Context, id string) context.Context {
	return withCorrelation(ctx, func(c *correlation) { c.visitorID = id })
}

// RequestIDFromContext returns the request id, or "".
func RequestIDFromContext(ctx context.Context) string {
	return correlationFrom(ctx).requestID
}

// VisitorIDFromContext returns the visitor id, or "".
func VisitorIDFromContext(ctx context.Context) string {
	return correlationFrom(ctx).visitorID
}

// WithContext adds the ids found in ctx to logger. Loggers are returned
// unchanged when ctx carries none.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	c := correlationFrom(ctx)
	if c == (correlation{}) {
		return logger
	}
	lc := logger.With()
	if c.requestID != "" {
		lc = lc.Str(FieldRequestID, c.requestID)
	}
	if c.visitorID != "" {
		lc = lc.Str(FieldVisitorID, c.visitorID)
	}
	return lc.Logger()
}

// WithComponentFromContext is WithComponent plus the ids found in ctx.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	return WithContext(ctx, WithComponent(component))
}
