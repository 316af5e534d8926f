package http

import (
	"net/http"

	"github.com/ailab/authd/pkg/httpx"
)

// LivezHandler reports process liveness. It never touches dependencies;
// if the handler runs, the process is alive.
func LivezHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
