// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/folio/internal/config"
)

func testDeps(handler http.Handler) Deps {
	return Deps{
		Logger: zerolog.New(io.Discard),
		Server: config.ServerConfig{
			ListenAddr:      "127.0.0.1:0",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			IdleTimeout:     time.Second,
			ShutdownTimeout: 2 * time.Second,
		},
		APIHandler: handler,
	}
}

func waitForAddr(t *testing.T, m Manager) string {
	t.Helper()
	var addr string
	require.Eventually(t, func() bool {
		addr = m.APIAddr()
		return addr != ""
	}, 2*time.Second, 10*time.Millisecond)
	return addr
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(Deps{Logger: zerolog.New(io.Discard)})
	assert.ErrorIs(t, err, ErrMissingAPIHandler)

	_, err = NewManager(Deps{Logger: zerolog.Nop(), APIHandler: http.NotFoundHandler()})
	assert.ErrorIs(t, err, ErrMissingLogger)
}

func TestManager_StartServeShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "hello")
	})
	m, err := NewManager(testDeps(handler))
	require.NoError(t, err)

	var order []string
	m.RegisterShutdownHook("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	m.RegisterShutdownHook("second", func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()

	addr := waitForAddr(t, m)
	code, body := get(t, "http://"+addr+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "hello", body)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("manager did not stop")
	}
	assert.Equal(t, []string{"second", "first"}, order)

	assert.NoError(t, m.Shutdown(context.Background()), "second shutdown is a no-op")
	assert.ErrorIs(t, m.Start(context.Background()), ErrAlreadyStarted)
}

func TestManager_ShutdownBeforeStart(t *testing.T) {
	m, err := NewManager(testDeps(http.NotFoundHandler()))
	require.NoError(t, err)
	assert.ErrorIs(t, m.Shutdown(context.Background()), ErrManagerNotStarted)
}

func TestManager_BindFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = taken.Close() }()

	deps := testDeps(http.NotFoundHandler())
	deps.Server.ListenAddr = taken.Addr().String()
	m, err := NewManager(deps)
	require.NoError(t, err)

	hookRan := false
	m.RegisterShutdownHook("cleanup", func(context.Context) error {
		hookRan = true
		return nil
	})

	err = m.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start API server")
	assert.True(t, hookRan)
}

func TestManager_HookErrorsAreJoined(t *testing.T) {
	m, err := NewManager(testDeps(http.NotFoundHandler()))
	require.NoError(t, err)
	boom := errors.New("boom")
	m.RegisterShutdownHook("bad", func(context.Context) error { return boom })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()
	waitForAddr(t, m)
	cancel()

	err = <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestManager_MetricsListener(t *testing.T) {
	deps := testDeps(http.NotFoundHandler())
	deps.MetricsHandler = MetricsHandler()
	deps.MetricsAddr = "127.0.0.1:0"
	m, err := NewManager(deps)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()
	waitForAddr(t, m)

	mm := m.(*manager)
	require.NotNil(t, mm.metricsServer)
	cancel()
	require.NoError(t, <-done)
}
