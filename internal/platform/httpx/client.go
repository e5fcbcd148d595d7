// SPDX-License-Identifier: MIT

// Package httpx builds outbound HTTP clients with bounded timeouts.
package httpx

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultClientTimeout         = 5 * time.Second
	defaultDialTimeout           = 3 * time.Second
	defaultResponseHeaderTimeout = 3 * time.Second
	defaultIdleConnTimeout       = 30 * time.Second
	defaultExpectContinueTimeout = 1 * time.Second
	defaultMaxIdleConns          = 8
	defaultMaxIdleConnsPerHost   = 2
)

// NewClient returns a client for fetching remote documents.
// Dial and header timeouts never exceed the overall timeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(timeout),
	}
}

// NewTracedClient is NewClient with OpenTelemetry client spans around each request.
// With the noop tracer provider the wrapper only propagates context.
func NewTracedClient(timeout time.Duration) *http.Client {
	c := NewClient(timeout)
	c.Transport = otelhttp.NewTransport(c.Transport)
	return c
}

func newTransport(timeout time.Duration) *http.Transport {
	dialTimeout := min(timeout, defaultDialTimeout)
	headerTimeout := min(timeout, defaultResponseHeaderTimeout)

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: dialTimeout, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          defaultMaxIdleConns,
		MaxIdleConnsPerHost:   defaultMaxIdleConnsPerHost,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   dialTimeout,
		ResponseHeaderTimeout: headerTimeout,
		ExpectContinueTimeout: defaultExpectContinueTimeout,
	}
}
