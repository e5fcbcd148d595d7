// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ManuGH/folio/internal/api/problem"
)

// CSRFProtection rejects state-changing requests whose Origin (or Referer)
// is neither the request's own origin nor in allowedOrigins.
//
// Requests carrying an Authorization header are exempt: browsers never
// attach one on their own, so they cannot be forged cross-site.
func CSRFProtection(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimSuffix(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}
			if r.Header.Get("Authorization") != "" {
				next.ServeHTTP(w, r)
				return
			}

			origin := requestOrigin(r)
			if origin == "" {
				problem.Write(w, r, http.StatusForbidden, problem.TypeForbidden, "Forbidden", "missing origin information")
				return
			}
			if !allowed[origin] && !sameOrigin(origin, r) {
				problem.Write(w, r, http.StatusForbidden, problem.TypeForbidden, "Forbidden", "cross-origin request not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestOrigin prefers Origin and falls back to the Referer's scheme and host.
func requestOrigin(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" && origin != "null" {
		return strings.TrimSuffix(origin, "/")
	}
	ref := r.Header.Get("Referer")
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func sameOrigin(origin string, r *http.Request) bool {
	if r.Host == "" {
		return false
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return origin == scheme+"://"+r.Host
}
