package http

import (
	"errors"
	"net/http"

	"github.com/ailab/authd/internal/auth/service"
	"github.com/ailab/authd/pkg/httpx"
	"github.com/ailab/authd/pkg/slogx"
)

// writeServiceError translates service-layer sentinels into uniform
// client-facing signals. Credential failures surface as coarse 401/403
// codes; infrastructure failures as 5xx, logged with their real cause
// but never exposed on the wire.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, service.ErrAccountDisabled):
		httpx.WriteError(w, http.StatusForbidden, "account_disabled")
	case errors.Is(err, service.ErrSessionExpired):
		httpx.WriteError(w, http.StatusUnauthorized, "session_expired")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrAccountExists):
		httpx.WriteError(w, http.StatusConflict, "account_exists")
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Error("store unavailable", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable")
	default:
		log.Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error")
	}
}
