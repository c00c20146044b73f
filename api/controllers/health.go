package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/vibecommerce/storefront-backend/api/responses"
	"github.com/vibecommerce/storefront-backend/pkg/config"
)

// pinger is anything whose liveness can be probed, the db and redis clients
// both qualify.
type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by probing the database and cache. A failed
// probe returns 503 so the load balancer stops routing here.
func HealthReady(cfg *config.Config, database, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "cache": "ok"}
		healthy := true
		if database == nil || database.Ping(ctx) != nil {
			checks["database"] = "unavailable"
			healthy = false
		}
		if cache == nil || cache.Ping(ctx) != nil {
			checks["cache"] = "unavailable"
			healthy = false
		}

		if !healthy {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]any{
				"status": "degraded",
				"checks": checks,
			})
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
