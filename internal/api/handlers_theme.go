// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"

	"github.com/ManuGH/folio/internal/theme"
)

type themeResponse struct {
	Theme theme.Theme `json:"theme"`
	Icon  theme.Icon  `json:"icon"`
}

func newThemeResponse(t theme.Theme) themeResponse {
	return themeResponse{Theme: t, Icon: theme.IconFor(t)}
}

// GET /api/theme
func (s *Server) handleThemeGet(w http.ResponseWriter, r *http.Request) {
	_, t := s.visitorTheme(w, r)
	writeJSON(w, r, http.StatusOK, newThemeResponse(t))
}

// POST /theme/toggle answers the no-script form with a redirect and fetch
// callers with JSON.
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	ctx, visitor := s.visitor(w, r)
	next, err := s.themes.Toggle(ctx, visitor, r.Header.Get(hintHeader))
	if err != nil {
		internalError(w, r, err, "theme.toggle_failed")
		return
	}
	if wantsJSON(r) {
		writeJSON(w, r, http.StatusOK, newThemeResponse(next))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// PUT /theme {"theme":"light"}
func (s *Server) handleThemeSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	t, err := theme.Parse(body.Theme)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	ctx, visitor := s.visitor(w, r)
	if err := s.themes.Set(ctx, visitor, t); err != nil {
		if errors.Is(err, theme.ErrInvalidTheme) {
			badRequest(w, r, err.Error())
			return
		}
		internalError(w, r, err, "theme.set_failed")
		return
	}
	writeJSON(w, r, http.StatusOK, newThemeResponse(t))
}
