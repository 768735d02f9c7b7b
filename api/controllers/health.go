package controllers

import (
	"net/http"

	"github.com/shreemobiles/storefront-backend/api/responses"
	"github.com/shreemobiles/storefront-backend/pkg/config"
	"github.com/shreemobiles/storefront-backend/pkg/logger"
	pkgredis "github.com/shreemobiles/storefront-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShreeMobiles-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. Redis is probed when available; the API can
// serve catalog reads without it, so a missing client is not a failure.
func HealthReady(cfg *config.Config, cache pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShreeMobiles-Env", cfg.App.Env)

		status := map[string]string{"status": "ready"}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "readiness redis probe failed", err)
				}
				status["redis"] = "unavailable"
			} else {
				status["redis"] = "ok"
			}
		}

		responses.WriteSuccess(w, status)
	}
}
