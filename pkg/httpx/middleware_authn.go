package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ailab/authd/pkg/jwtx"
	"github.com/ailab/authd/pkg/slogx"
)

// DefaultTokenHeader is where the access token is expected unless the
// service is configured otherwise.
const DefaultTokenHeader = "Authorization"

// AuthnMiddleware is the request-boundary gate: it extracts the access
// token from headerName, verifies it, and attaches the resulting Identity
// to the request context. Routes that authenticate by other means (login,
// refresh) simply don't get this middleware.
//
// All failures collapse to an identical 401; whether the token was
// missing, malformed, forged, or expired is only distinguished in logs.
func AuthnMiddleware(v jwtx.Verifier, headerName string) Middleware {
	if headerName == "" {
		headerName = DefaultTokenHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := r.Header.Get(headerName)
			if headerName == DefaultTokenHeader {
				// The Authorization header carries a scheme prefix.
				if !strings.HasPrefix(raw, "Bearer ") {
					raw = ""
				} else {
					raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer"))
				}
			}
			if raw == "" {
				log.Warn("access token missing")
				writeUnauthorized(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					log.Info("access token expired")
				} else {
					log.Warn("access token rejected", "err", err)
				}
				writeUnauthorized(w)
				return
			}

			ctx = ContextWithIdentity(ctx, Identity{
				UserID:      claims.UserID,
				AccountName: claims.AccountName,
				Role:        claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized")
}
