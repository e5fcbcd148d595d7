// SPDX-License-Identifier: MIT

package problem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/theme", nil)
	req = req.WithContext(xlog.ContextWithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	Write(rec, req, http.StatusBadRequest, TypeBadRequest, "Invalid theme", "theme must be dark or light")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeBadRequest, body["type"])
	assert.Equal(t, "Invalid theme", body["title"])
	assert.EqualValues(t, 400, body["status"])
	assert.Equal(t, "/theme", body["instance"])
	assert.Equal(t, "req-1", body["requestId"])
}

func TestWrite_NoRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()

	Write(rec, req, http.StatusNotFound, TypeNotFound, "Not Found", "")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "requestId")
	assert.NotContains(t, body, "detail")
}
