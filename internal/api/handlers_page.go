// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/render"
	"github.com/ManuGH/folio/internal/theme"
)

// hintHeader is the client hint carrying the browser's preferred colour scheme.
const hintHeader = "Sec-CH-Prefers-Color-Scheme"

// visitor resolves the visitor id and returns a context carrying it into
// log lines.
func (s *Server) visitor(w http.ResponseWriter, r *http.Request) (context.Context, string) {
	id := theme.VisitorID(w, r, s.settings.Get().Theme.CookieName)
	return xlog.ContextWithVisitorID(r.Context(), id), id
}

// visitorTheme resolves the requesting visitor and their theme.
func (s *Server) visitorTheme(w http.ResponseWriter, r *http.Request) (string, theme.Theme) {
	ctx, visitor := s.visitor(w, r)
	return visitor, s.themes.Current(ctx, visitor, r.Header.Get(hintHeader))
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, t := s.visitorTheme(w, r)
	page, err := s.renderer.Render(r.Context(), s.portfolio.Current(), t)
	if err != nil {
		internalError(w, r, err, "render.failed")
		return
	}
	w.Header().Set("Accept-CH", hintHeader)
	w.Header().Set("Vary", "Cookie, "+hintHeader)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// GET /config/config.json
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	data, err := s.portfolio.Marshal()
	if err != nil {
		internalError(w, r, err, "portfolio.marshal_failed")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}

// GET /resume serves links.resume: absolute URLs redirect, anything else is a
// file under the assets root.
func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	doc := s.portfolio.Current().Doc
	link := strings.TrimSpace(doc.Links.Resume)
	if link == "" {
		notFound(w, r, "no resume configured")
		return
	}
	if u, err := url.Parse(link); err == nil && u.IsAbs() {
		http.Redirect(w, r, link, http.StatusFound)
		return
	}

	name := resumeFileName(doc.Personal.Name)
	s.serveAsset(w, r, assetRelPath(link), `attachment; filename="`+name+`"`)
}

// resumeFileName builds "<Name>_Resume.pdf" with spaces replaced.
func resumeFileName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	name = strings.Map(func(r rune) rune {
		if r == '"' || r == '/' || r == '\\' {
			return -1
		}
		return r
	}, name)
	if name == "" {
		return "Resume.pdf"
	}
	return name + "_Resume.pdf"
}

// assetRelPath maps a document link ("assets/docs/resume.pdf") to a path
// relative to the assets root.
func assetRelPath(link string) string {
	p := path.Clean("/" + link)
	p = strings.TrimPrefix(p, "/")
	return strings.TrimPrefix(p, "assets/")
}

func staticHandler() http.Handler {
	return http.FileServerFS(render.Static())
}

func isNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
