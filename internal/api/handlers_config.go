// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManuGH/folio/internal/api/problem"
	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/portfolio"
)

type valueResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type revisionResponse struct {
	Revision    uint64           `json:"revision"`
	Origin      portfolio.Origin `json:"origin"`
	Fingerprint string           `json:"fingerprint"`
}

func newRevisionResponse(snap *portfolio.Snapshot) revisionResponse {
	return revisionResponse{Revision: snap.Revision, Origin: snap.Origin, Fingerprint: snap.Fingerprint}
}

// GET /api/config?key=a.b&default=x
//
// default is decoded as JSON when it parses, else taken as a string.
func (s *Server) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := q.Get("key")
	if key == "" {
		badRequest(w, r, "query parameter key is required")
		return
	}
	var def any
	if q.Has("default") {
		raw := q.Get("default")
		if err := json.Unmarshal([]byte(raw), &def); err != nil {
			def = raw
		}
	}
	writeJSON(w, r, http.StatusOK, valueResponse{Key: key, Value: s.portfolio.Get(key, def)})
}

// PATCH /api/config {"key":"personal.location","value":"Pune"}
func (s *Server) handleConfigUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if body.Value == nil {
		badRequest(w, r, "value is required")
		return
	}
	var value any
	if err := json.Unmarshal(body.Value, &value); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := s.portfolio.Update(body.Key, value); err != nil {
		if errors.Is(err, portfolio.ErrInvalidPath) || errors.Is(err, portfolio.ErrNotObject) || errors.Is(err, portfolio.ErrIndex) {
			badRequest(w, r, err.Error())
			return
		}
		internalError(w, r, err, "portfolio.update_failed")
		return
	}
	writeJSON(w, r, http.StatusOK, newRevisionResponse(s.portfolio.Current()))
}

// POST /api/config/save
func (s *Server) handleConfigSave(w http.ResponseWriter, r *http.Request) {
	if err := s.portfolio.Save(r.Context()); err != nil {
		internalError(w, r, err, "portfolio.save_failed")
		return
	}
	writeJSON(w, r, http.StatusOK, newRevisionResponse(s.portfolio.Current()))
}

// POST /api/config/restore
func (s *Server) handleConfigRestore(w http.ResponseWriter, r *http.Request) {
	if err := s.portfolio.Restore(r.Context()); err != nil {
		if errors.Is(err, portfolio.ErrNoStoredDocument) {
			notFound(w, r, err.Error())
			return
		}
		internalError(w, r, err, "portfolio.restore_failed")
		return
	}
	writeJSON(w, r, http.StatusOK, newRevisionResponse(s.portfolio.Current()))
}

// POST /api/config/reload re-reads the configured source. On failure the
// current document stays and the caller gets 502.
func (s *Server) handleConfigReload(w http.ResponseWriter, r *http.Request) {
	if err := s.portfolio.Reload(r.Context()); err != nil {
		logger := xlog.WithComponentFromContext(r.Context(), "api")
		logger.Warn().
			Err(err).
			Str(xlog.FieldEvent, "portfolio.reload_failed").
			Msg("reload from source failed")
		writeProblem(w, r, http.StatusBadGateway, problem.TypeUnavailable, "Bad Gateway", err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, newRevisionResponse(s.portfolio.Current()))
}

type experienceResponse struct {
	Years   int    `json:"years"`
	Label   string `json:"label"`
	Display string `json:"display"`
	Source  string `json:"source"`
}

// GET /api/experience
func (s *Server) handleExperience(w http.ResponseWriter, r *http.Request) {
	est := s.portfolio.Current().Doc.EstimateExperience(s.now())
	writeJSON(w, r, http.StatusOK, experienceResponse{
		Years:   est.Years,
		Label:   est.Label,
		Display: est.Display(),
		Source:  string(est.Source),
	})
}
