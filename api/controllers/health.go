package controllers

import (
	"context"
	"net/http"

	"github.com/gracebuffer/storefront/api/responses"
	"github.com/gracebuffer/storefront/pkg/config"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Gracebuffer-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports whether the local store and session store answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, redis pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Gracebuffer-Env", cfg.App.Env)

		checks := map[string]string{"store": "ok", "session": "ok"}
		healthy := true

		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				checks["store"] = "unreachable"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "store ping failed", err)
				}
			}
		}
		if redis != nil {
			if err := redis.Ping(r.Context()); err != nil {
				checks["session"] = "unreachable"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "session store ping failed", err)
				}
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, checks)
	}
}
