// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	old := Defaults()

	next := old
	next.LogLevel = "debug"
	s := Diff(old, next)
	assert.Equal(t, []string{"LogLevel"}, s.ChangedFields)
	assert.False(t, s.RestartRequired)

	next.Server.ListenAddr = ":9999"
	s = Diff(old, next)
	assert.Equal(t, []string{"LogLevel", "Server.ListenAddr"}, s.ChangedFields)
	assert.True(t, s.RestartRequired)

	next = old
	next.Version = "other"
	assert.Empty(t, Diff(old, next).ChangedFields)
}

func TestHolder_Reload(t *testing.T) {
	path := writeYAML(t, "logLevel: info\n")
	loader := NewLoader(path, "dev")
	initial, err := loader.Load()
	require.NoError(t, err)

	h := NewHolder(initial, loader)
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("logLevel: debug\n"), 0o600))
	summary, err := h.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"LogLevel"}, summary.ChangedFields)
	assert.Equal(t, "debug", h.Get().LogLevel)

	select {
	case cfg := <-ch:
		assert.Equal(t, "debug", cfg.LogLevel)
	default:
		t.Fatal("listener was not notified")
	}
}

func TestHolder_ReloadKeepsCurrentOnError(t *testing.T) {
	path := writeYAML(t, "logLevel: info\n")
	loader := NewLoader(path, "dev")
	initial, err := loader.Load()
	require.NoError(t, err)
	h := NewHolder(initial, loader)

	require.NoError(t, os.WriteFile(path, []byte("logLevel: shouting\n"), 0o600))
	_, err = h.Reload(context.Background())
	require.Error(t, err)
	assert.Equal(t, "info", h.Get().LogLevel)
}

// Every hot-reloadable entry must name a real field, or Diff would never
// match it and the setting would silently require a restart.
func TestHotReloadableFieldsExist(t *testing.T) {
	for path := range hotReloadable {
		typ := reflect.TypeOf(AppConfig{})
		for _, part := range strings.Split(path, ".") {
			f, ok := typ.FieldByName(part)
			require.True(t, ok, "%s: no field %s", path, part)
			typ = f.Type
		}
		assert.NotEqual(t, reflect.Struct, typ.Kind(), "%s must be a leaf field", path)
	}
}
