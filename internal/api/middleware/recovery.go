// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/ManuGH/folio/internal/api/problem"
	xlog "github.com/ManuGH/folio/internal/log"
)

// Recoverer turns handler panics into a logged 500 problem response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			buf := make([]byte, 8192)
			n := runtime.Stack(buf, false)

			path := r.URL.Path
			if !utf8.ValidString(path) {
				path = strings.ToValidUTF8(path, "")
			}

			logger := xlog.WithComponentFromContext(r.Context(), "api")
			logger.Error().
				Str(xlog.FieldEvent, "panic.recovered").
				Str("method", r.Method).
				Str(xlog.FieldPath, path).
				Interface("panic_value", rec).
				Str("stack_trace", string(buf[:n])).
				Msg("panic recovered in HTTP handler")

			problem.Write(w, r, http.StatusInternalServerError, problem.TypeInternal,
				"Internal Server Error", "An unexpected error occurred. Please try again later.")
		}()
		next.ServeHTTP(w, r)
	})
}
