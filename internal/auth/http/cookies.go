package http

import (
	"net/http"
	"time"
)

// CookieConfig controls how the refresh-token cookie is issued. The
// cookie is scoped to the auth endpoints so the browser never sends the
// long-lived token to ordinary API routes.
type CookieConfig struct {
	Name   string
	Path   string
	Domain string
	Secure bool
	MaxAge time.Duration
}

const (
	DefaultRefreshCookieName = "refresh_token"
	DefaultRefreshCookiePath = "/api/auth"
)

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultRefreshCookieName
	}
	return c.Name
}

func (c CookieConfig) path() string {
	if c.Path == "" {
		return DefaultRefreshCookiePath
	}
	return c.Path
}

// setRefreshCookie writes the refresh token as an httpOnly cookie.
func setRefreshCookie(w http.ResponseWriter, cfg CookieConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    token,
		Path:     cfg.path(),
		Domain:   cfg.Domain,
		MaxAge:   int(cfg.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearRefreshCookie expires the refresh cookie on the client.
func clearRefreshCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    "",
		Path:     cfg.path(),
		Domain:   cfg.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// refreshTokenFromRequest pulls the refresh token out of the request
// cookie. Returns "" when the cookie is absent.
func refreshTokenFromRequest(r *http.Request, cfg CookieConfig) string {
	c, err := r.Cookie(cfg.name())
	if err != nil {
		return ""
	}
	return c.Value
}
