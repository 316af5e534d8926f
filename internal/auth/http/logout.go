package http

import (
	"net/http"

	"github.com/ailab/authd/internal/auth/domain"
	"github.com/ailab/authd/internal/auth/service"
	"github.com/ailab/authd/pkg/httpx"
	"github.com/ailab/authd/pkg/slogx"
)

// LogoutHandler revokes the caller's refresh slot and clears the
// cookie. Logging out twice is a no-op, not an error.
func LogoutHandler(sessions *service.SessionService, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := httpx.IdentityFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusInternalServerError, "invalid_context")
			return
		}

		role, _ := domain.ParseRole(ident.Role)
		if err := sessions.Logout(r.Context(), domain.Identity{
			UserID:      ident.UserID,
			AccountName: ident.AccountName,
			Role:        role,
		}); err != nil {
			writeServiceError(w, r, err)
			return
		}

		slogx.FromContext(r.Context()).Info("logout", "user_id", ident.UserID)

		clearRefreshCookie(w, cookies)
		w.WriteHeader(http.StatusNoContent)
	}
}
