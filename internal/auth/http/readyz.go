package http

import (
	"net/http"

	"github.com/ailab/authd/internal/auth/session"
	"github.com/ailab/authd/internal/auth/store"
	"github.com/ailab/authd/pkg/httpx"
	"github.com/ailab/authd/pkg/slogx"
)

type readyzResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}

// ReadyzHandler pings both backing stores and reports degraded state
// with a 503 so load balancers stop routing to the instance.
func ReadyzHandler(db store.Store, sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{Status: "ok", Database: "ok", Sessions: "ok"}
		status := http.StatusOK

		if err := db.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Warn("database ping failed", "err", err)
			resp.Status = "degraded"
			resp.Database = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if err := sessions.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Warn("session store ping failed", "err", err)
			resp.Status = "degraded"
			resp.Sessions = "unavailable"
			status = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, status, resp)
	}
}
