// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("shouting"))

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, parseLevel(""))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"), "explicit level wins over LOG_LEVEL")
}

func TestConfigure_ReplacesGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf, Service: "folio-test", Version: "v9"})
	t.Cleanup(func() { Configure(Config{}) })

	logger := WithComponent("render")
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "render", line[FieldComponent])
	assert.Equal(t, "folio-test", line["service"])
	assert.Equal(t, "v9", line["version"])
}
