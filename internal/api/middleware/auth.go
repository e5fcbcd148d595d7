// SPDX-License-Identifier: MIT

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/ManuGH/folio/internal/api/problem"
	xlog "github.com/ManuGH/folio/internal/log"
)

// TokenSource returns the configured API token; empty disables protected routes.
type TokenSource func() string

// BearerAuth guards write endpoints. Without a configured token every request
// is refused with 503 so an unconfigured deployment stays read-only.
func BearerAuth(token TokenSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			want := token()
			logger := xlog.WithComponentFromContext(r.Context(), "auth")
			if want == "" {
				logger.Warn().Str(xlog.FieldEvent, "auth.disabled").Msg("write endpoint called without a configured API token")
				problem.Write(w, r, http.StatusServiceUnavailable, problem.TypeUnavailable,
					"Service Unavailable", "write endpoints are disabled (no API token configured)")
				return
			}
			got := extractBearer(r)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
				logger.Warn().Str(xlog.FieldEvent, "auth.invalid_token").Msg("missing or invalid API token")
				w.Header().Set("WWW-Authenticate", `Bearer realm="folio"`)
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
