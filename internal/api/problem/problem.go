// SPDX-License-Identifier: MIT

// Package problem writes RFC 7807 problem documents.
package problem

import (
	"encoding/json"
	"net/http"

	xlog "github.com/ManuGH/folio/internal/log"
)

// HeaderRequestID carries the correlation id on requests and responses.
const HeaderRequestID = "X-Request-ID"

// Problem types.
const (
	TypeBadRequest   = "folio/bad_request"
	TypeUnauthorized = "folio/unauthorized"
	TypeUnavailable  = "folio/unavailable"
	TypeNotFound     = "folio/not_found"
	TypeRateLimited  = "folio/rate_limited"
	TypeForbidden    = "folio/forbidden"
	TypeInternal     = "folio/internal"
)

// Write writes an application/problem+json response.
// The request id is taken from the context, falling back to the response header.
func Write(w http.ResponseWriter, r *http.Request, status int, problemType, title, detail string) {
	reqID := xlog.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = w.Header().Get(HeaderRequestID)
	}

	body := map[string]any{
		"type":   problemType,
		"title":  title,
		"status": status,
	}
	if detail != "" {
		body["detail"] = detail
	}
	if p := r.URL.EscapedPath(); p != "" {
		body["instance"] = p
	}
	if reqID != "" {
		body["requestId"] = reqID
		w.Header().Set(HeaderRequestID, reqID)
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		xlog.L().Error().Err(err).Str("type", problemType).Int("status", status).Msg("failed to encode problem response")
	}
}
