package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/5w1tchy/catalog-api/internal/api/httpx"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type status struct {
	Status string `json:"status"`
}

// Healthz reports liveness only.
func Healthz(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, status{Status: "ok"})
}

// Readyz answers 503 until the database responds.
func Readyz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			httpx.ErrorStatus(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		httpx.OK(w, status{Status: "ready"})
	}
}
