package httpx

import (
	"net/http"

	"github.com/ailab/authd/pkg/slogx"
)

// RequireRole is the fine-grained gate: the caller's role must equal the
// required role exactly. It composes after AuthnMiddleware; reaching it
// without an identity in context is a programming error in the route
// table, reported as a 500 rather than a user-facing 401/403.
func RequireRole(required string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			id, ok := IdentityFromContext(r.Context())
			if !ok {
				log.Error("role gate reached without identity in context")
				WriteError(w, http.StatusInternalServerError, "invalid_context")
				return
			}

			if id.Role != required {
				log.Info("permission denied",
					"required_role", required,
					"actual_role", id.Role,
				)
				WriteError(w, http.StatusForbidden, "permission_denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
