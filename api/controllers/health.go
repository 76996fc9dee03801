package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// SessionPinger checks the session backend.
type SessionPinger interface {
	Ping(ctx context.Context) error
}

// Healthz reports liveness plus the session backend state. A degraded
// session store still returns 200 since the memory fallback keeps the
// storefront serving.
func Healthz(pinger SessionPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		sessions := "ok"
		if pinger == nil {
			sessions = "memory"
		} else if err := pinger.Ping(ctx); err != nil {
			sessions = "unreachable"
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":   "ok",
			"sessions": sessions,
		})
	}
}
