package http

import (
	"errors"
	"net/http"

	"github.com/ailab/authd/internal/auth/service"
	"github.com/ailab/authd/pkg/httpx"
)

type refreshResponse struct {
	ID          int64  `json:"id"`
	AccountName string `json:"account_name"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
}

// RefreshHandler exchanges the refresh cookie for a fresh token pair.
// Every successful refresh rotates the refresh token, so a replayed
// cookie from before the rotation is rejected as an expired session.
func RefreshHandler(sessions *service.SessionService, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := refreshTokenFromRequest(r, cookies)

		result, err := sessions.Refresh(r.Context(), token)
		if err != nil {
			// Only a dead session clears the cookie; a transient store
			// failure must not log the client out.
			if errors.Is(err, service.ErrSessionExpired) {
				clearRefreshCookie(w, cookies)
			}
			writeServiceError(w, r, err)
			return
		}

		setRefreshCookie(w, cookies, result.RefreshToken)
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, refreshResponse{
			ID:          result.ID,
			AccountName: result.AccountName,
			Role:        result.Role.String(),
			AccessToken: result.AccessToken,
		})
	}
}
