// SPDX-License-Identifier: MIT

package theme

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// visitorCookieMaxAge keeps a visitor's choice for a year.
const visitorCookieMaxAge = 365 * 24 * time.Hour

// VisitorID returns the visitor id carried by the named cookie, minting a
// new one (and setting the cookie on w) when it is absent or malformed.
func VisitorID(w http.ResponseWriter, r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(visitorCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
