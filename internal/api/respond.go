// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/ManuGH/folio/internal/api/middleware"
	"github.com/ManuGH/folio/internal/api/problem"
	xlog "github.com/ManuGH/folio/internal/log"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := xlog.WithComponentFromContext(r.Context(), "api")
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, problemType, title, detail string) {
	problem.Write(w, r, status, problemType, title, detail)
}

func badRequest(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, http.StatusBadRequest, problem.TypeBadRequest, "Bad Request", detail)
}

func notFound(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, http.StatusNotFound, problem.TypeNotFound, "Not Found", detail)
}

func internalError(w http.ResponseWriter, r *http.Request, err error, event string) {
	logger := xlog.WithComponentFromContext(r.Context(), "api")
	evt := logger.Error().
		Err(err).
		Str(xlog.FieldEvent, event)
	if traceID, spanID := middleware.TraceIDs(r); traceID != "" {
		evt = evt.Str("trace_id", traceID).Str("span_id", spanID)
	}
	evt.Msg("request failed")
	writeProblem(w, r, http.StatusInternalServerError, problem.TypeInternal, "Internal Server Error", "")
}

// decodeJSON reads a single JSON object from the body into v.
func decodeJSON(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return fmt.Errorf("unsupported content type %q", ct)
		}
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// wantsJSON reports whether the client prefers a JSON answer over a redirect.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
