package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/farmlinkhq/farmlink-backend/api/responses"
	"github.com/farmlinkhq/farmlink-backend/pkg/config"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
)

const envHeader = "X-Farmlink-Env"

// Pinger is the health-check surface of a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging the database and redis. A nil
// pinger is treated as not configured and skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		failed := false

		for name, p := range map[string]Pinger{"database": dbP, "redis": redisP} {
			if p == nil {
				continue
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = true
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "dependency", name), "readiness check failed: "+err.Error())
				}
				continue
			}
			checks[name] = "up"
		}

		if failed {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").
				WithDetails(checks)
			responses.WriteError(r.Context(), nil, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
