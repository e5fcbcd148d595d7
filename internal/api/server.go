// SPDX-License-Identifier: MIT

// Package api serves the portfolio page and its JSON endpoints.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ManuGH/folio/internal/api/middleware"
	"github.com/ManuGH/folio/internal/config"
	"github.com/ManuGH/folio/internal/health"
	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/portfolio"
	"github.com/ManuGH/folio/internal/render"
	"github.com/ManuGH/folio/internal/theme"
)

// ErrMissingDependency is returned by New when a required dependency is nil.
var ErrMissingDependency = errors.New("api: missing dependency")

// Settings exposes the live daemon configuration. *config.Holder satisfies it.
type Settings interface {
	Get() config.AppConfig
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Settings  Settings
	Portfolio *portfolio.Holder
	Themes    *theme.Manager
	Renderer  *render.Renderer
	Health    *health.Manager
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server is the public HTTP surface.
type Server struct {
	settings  Settings
	portfolio *portfolio.Holder
	themes    *theme.Manager
	renderer  *render.Renderer
	health    *health.Manager
	now       func() time.Time
	logger    zerolog.Logger

	router chi.Router
}

// New wires the routes. The middleware stack is fixed at construction; only
// the API token is read per request.
func New(deps Deps) (*Server, error) {
	switch {
	case deps.Settings == nil:
		return nil, errors.Join(ErrMissingDependency, errors.New("settings"))
	case deps.Portfolio == nil:
		return nil, errors.Join(ErrMissingDependency, errors.New("portfolio"))
	case deps.Themes == nil:
		return nil, errors.Join(ErrMissingDependency, errors.New("themes"))
	case deps.Renderer == nil:
		return nil, errors.Join(ErrMissingDependency, errors.New("renderer"))
	case deps.Health == nil:
		return nil, errors.Join(ErrMissingDependency, errors.New("health"))
	}
	s := &Server{
		settings:  deps.Settings,
		portfolio: deps.Portfolio,
		themes:    deps.Themes,
		renderer:  deps.Renderer,
		health:    deps.Health,
		now:       deps.Now,
		logger:    xlog.WithComponent("api"),
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.router = s.routes(deps.Settings.Get())
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes(cfg config.AppConfig) chi.Router {
	tracing := ""
	if cfg.Telemetry.Enabled {
		tracing = "folio-http"
	}
	r := middleware.NewRouter(middleware.StackConfig{
		AllowedOrigins:        cfg.API.AllowedOrigins,
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		TracingService:        tracing,
		EnableLogging:         true,
	})

	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)

	r.Get("/", s.handleIndex)
	r.Get("/config/config.json", s.handleDocument)
	r.Get("/resume", s.handleResume)
	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler()))
	r.Handle("/assets/*", http.StripPrefix("/assets/", s.assetHandler()))

	csrf := middleware.CSRFProtection(cfg.API.AllowedOrigins)
	limit := middleware.WriteRateLimit(cfg.API.RateLimit)

	r.Group(func(r chi.Router) {
		r.Use(csrf, limit)
		r.Post("/theme/toggle", s.handleThemeToggle)
		r.Put("/theme", s.handleThemeSet)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/theme", s.handleThemeGet)
		r.Get("/config", s.handleConfigGet)
		r.Get("/experience", s.handleExperience)

		r.Group(func(r chi.Router) {
			r.Use(csrf, limit, middleware.BearerAuth(s.apiToken))
			r.Patch("/config", s.handleConfigUpdate)
			r.Post("/config/save", s.handleConfigSave)
			r.Post("/config/restore", s.handleConfigRestore)
			r.Post("/config/reload", s.handleConfigReload)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w, r, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusMethodNotAllowed, "folio/method_not_allowed", "Method Not Allowed", "")
	})
	return r
}

func (s *Server) apiToken() string { return s.settings.Get().API.Token }
