// SPDX-License-Identifier: MIT

package daemon

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ManuGH/folio/internal/config"
)

// Deps contains dependencies required by the daemon Manager.
type Deps struct {
	Logger zerolog.Logger

	Server config.ServerConfig

	// APIHandler serves the public listener.
	APIHandler http.Handler

	// MetricsHandler and MetricsAddr enable the metrics listener when both are set.
	MetricsHandler http.Handler
	MetricsAddr    string
}

// Validate checks if the dependencies are valid.
func (d *Deps) Validate() error {
	if d.Logger.GetLevel() == zerolog.Disabled {
		return ErrMissingLogger
	}
	if d.APIHandler == nil {
		return ErrMissingAPIHandler
	}
	return nil
}
