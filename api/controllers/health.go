package controllers

import (
	"context"
	"net/http"

	"github.com/comandahq/backoffice-backend/api/responses"
	"github.com/comandahq/backoffice-backend/pkg/config"
	pkgerrors "github.com/comandahq/backoffice-backend/pkg/errors"
	"github.com/comandahq/backoffice-backend/pkg/logger"
)

// Pinger is any dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Comanda-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Comanda-Env", cfg.App.Env)
		for _, p := range pingers {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
