// SPDX-License-Identifier: MIT

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false, ExporterType: "grpc"})
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	_, span := otel.Tracer("test").Start(context.Background(), "noop-check")
	assert.False(t, span.IsRecording())
	span.End()

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_InvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, ExporterType: "zipkin"})
	require.Error(t, err)
	assert.Equal(t, `telemetry exporter "zipkin": want grpc or http`, err.Error())
}

func TestNewProvider_HTTPExporter(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{
		Enabled:      true,
		ServiceName:  "folio-test",
		ExporterType: "http",
		Endpoint:     "127.0.0.1:1",
		SamplingRate: 0.5,
	})
	require.NoError(t, err)
	assert.True(t, p.Enabled())
	_ = p.Shutdown(context.Background())
}

func TestLoadAttributes(t *testing.T) {
	attrs := LoadAttributes("remote", "https://example.com/config.json", 7)
	assert.Equal(t, []attribute.KeyValue{
		attribute.String(PortfolioOriginKey, "remote"),
		attribute.String(PortfolioSourceKey, "https://example.com/config.json"),
		attribute.Int64(PortfolioRevisionKey, 7),
	}, attrs)
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), sampler(0.25).Description())
}

func TestRecordError(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	_, span := tp.Tracer("test").Start(context.Background(), "load")
	RecordError(span, nil, "ignored")
	RecordError(span, errors.New("boom"), "fetch")
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.String(ErrorTypeKey, "fetch"))
}
