// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ManuGH/folio/internal/api/problem"
	xlog "github.com/ManuGH/folio/internal/log"
	platformfs "github.com/ManuGH/folio/internal/platform/fs"
)

// assetHandler serves files confined to the assets root. Directory listings
// are never produced.
func (s *Server) assetHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.serveAsset(w, r, r.URL.Path, "")
	})
}

// serveAsset writes the confined file at rel. A non-empty disposition is
// sent only once the file is known to exist.
func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request, rel, disposition string) {
	logger := xlog.WithComponentFromContext(r.Context(), "api")
	deny := func(status int, reason string) {
		logger.Warn().
			Str(xlog.FieldEvent, "asset.denied").
			Str(xlog.FieldPath, rel).
			Str("reason", reason).
			Msg("asset request denied")
		switch status {
		case http.StatusNotFound:
			notFound(w, r, "")
		default:
			writeProblem(w, r, status, problem.TypeForbidden, "Forbidden", "")
		}
	}

	if isPathTraversal(rel) {
		deny(http.StatusForbidden, "path_escape")
		return
	}
	if rel == "" || strings.HasSuffix(rel, "/") {
		deny(http.StatusForbidden, "directory_listing")
		return
	}

	root := s.settings.Get().Assets.Root
	full, err := platformfs.ConfineRelPath(root, rel)
	if err != nil {
		if errors.Is(err, platformfs.ErrEscapesRoot) {
			deny(http.StatusForbidden, "path_escape")
			return
		}
		deny(http.StatusNotFound, "not_found")
		return
	}
	if err := platformfs.IsRegularFile(full); err != nil {
		if isNotExist(err) {
			deny(http.StatusNotFound, "not_found")
			return
		}
		deny(http.StatusForbidden, "not_regular")
		return
	}

	// #nosec G304 -- full is confined to the assets root above
	f, err := os.Open(full)
	if err != nil {
		internalError(w, r, err, "asset.open_failed")
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		internalError(w, r, err, "asset.stat_failed")
		return
	}
	w.Header().Set("ETag", fmt.Sprintf(`W/"%x-%x"`, info.ModTime().UnixNano(), info.Size()))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if disposition != "" {
		w.Header().Set("Content-Disposition", disposition)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// isPathTraversal detects parent references after repeated decoding and
// Unicode normalisation, plus NUL bytes.
func isPathTraversal(p string) bool {
	decoded := p
	for range 3 {
		d, err := url.PathUnescape(decoded)
		if err != nil || d == decoded {
			break
		}
		decoded = d
	}
	if strings.IndexByte(decoded, 0) >= 0 || strings.Contains(decoded, "\\") {
		return true
	}
	normalized := norm.NFC.String(decoded)
	for _, seg := range strings.Split(normalized, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
