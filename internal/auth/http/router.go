// Package http wires the session and user services to their HTTP
// routes, with authentication and role gates applied per route.
package http

import (
	"log/slog"
	"net/http"

	"github.com/ailab/authd/internal/auth/domain"
	"github.com/ailab/authd/internal/auth/service"
	"github.com/ailab/authd/internal/auth/session"
	"github.com/ailab/authd/internal/auth/store"
	"github.com/ailab/authd/pkg/httpx"
	"github.com/ailab/authd/pkg/jwtx"
	"github.com/ailab/authd/pkg/slogx"
)

// Router holds the handler dependencies and the route table.
type Router struct {
	Sessions *service.SessionService
	Users    *service.UserService

	Verifier     jwtx.Verifier
	TokenHeader  string
	Cookies      CookieConfig
	DB           store.Store
	SessionStore session.Store
	Logger       *slog.Logger
}

// Handler builds the full route table. Authentication is applied per
// route rather than globally so the login and health endpoints stay
// reachable without a token.
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	authn := httpx.AuthnMiddleware(rt.Verifier, rt.TokenHeader)
	admin := httpx.RequireRole(domain.RoleAdmin.String())

	mux.Handle("POST /api/auth/login", httpx.Chain(
		LoginHandler(rt.Sessions, rt.Cookies),
		httpx.RateLimitByIP(httpx.StrictLimit),
	))
	mux.Handle("GET /api/auth/refresh", httpx.Chain(
		RefreshHandler(rt.Sessions, rt.Cookies),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	))
	mux.Handle("GET /api/auth/logout", httpx.Chain(
		LogoutHandler(rt.Sessions, rt.Cookies),
		authn,
	))

	mux.Handle("GET /api/user/page", httpx.Chain(
		ListUsersHandler(rt.Users),
		authn, admin,
	))
	mux.Handle("GET /api/user/{id}", httpx.Chain(
		GetUserHandler(rt.Users),
		authn,
		httpx.RateLimitByUser(httpx.LenientLimit),
	))
	mux.Handle("POST /api/user", httpx.Chain(
		CreateUserHandler(rt.Users),
		authn, admin,
	))
	mux.Handle("PUT /api/user/{id}", httpx.Chain(
		UpdateUserHandler(rt.Users),
		authn, admin,
	))
	mux.Handle("PUT /api/user/{id}/status", httpx.Chain(
		UpdateUserStatusHandler(rt.Users),
		authn, admin,
	))

	mux.Handle("GET /livez", LivezHandler())
	mux.Handle("GET /readyz", ReadyzHandler(rt.DB, rt.SessionStore))

	log := rt.Logger
	if log == nil {
		log = slog.Default()
	}
	return slogx.HTTPMiddleware(log)(mux)
}
