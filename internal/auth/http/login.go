package http

import (
	"encoding/json"
	"net/http"

	"github.com/ailab/authd/internal/auth/service"
	"github.com/ailab/authd/pkg/httpx"
	"github.com/ailab/authd/pkg/slogx"
)

type loginRequest struct {
	AccountName string `json:"account_name"`
	Password    string `json:"password"`
}

type loginResponse struct {
	ID          int64  `json:"id"`
	AccountName string `json:"account_name"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
}

// LoginHandler authenticates an account and starts a session. The
// access token is returned in the body; the refresh token travels only
// as an httpOnly cookie.
func LoginHandler(sessions *service.SessionService, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if req.AccountName == "" || req.Password == "" {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		result, err := sessions.Login(r.Context(), req.AccountName, req.Password)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		slogx.FromContext(r.Context()).Info("login",
			"user_id", result.ID,
			"account_name", result.AccountName,
		)

		setRefreshCookie(w, cookies, result.RefreshToken)
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, loginResponse{
			ID:          result.ID,
			AccountName: result.AccountName,
			Role:        result.Role.String(),
			AccessToken: result.AccessToken,
		})
	}
}
