package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ailab/authd/internal/auth/domain"
	"github.com/ailab/authd/internal/auth/session"
	"github.com/ailab/authd/internal/auth/store"
	"github.com/ailab/authd/pkg/cryptox"
	"github.com/ailab/authd/pkg/jwtx"
	"github.com/ailab/authd/pkg/slogx"
)

// SessionService orchestrates login, refresh rotation and logout. It is
// the only component touching both the token codec and the session slot
// store. Concurrent calls for different users proceed fully in parallel;
// for the same user the slot's atomic overwrite is the only
// synchronization, and the last writer wins.
type SessionService struct {
	Users    store.Users
	Sessions session.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// StoreTimeout bounds each session-store round trip. Zero means no
	// bound beyond the caller's context.
	StoreTimeout time.Duration
}

// Login authenticates an account/password pair and mints a fresh session.
// The refresh token is written to the slot store before returning; a
// failed write fails the login rather than handing out a refresh token
// the server would later reject.
func (s *SessionService) Login(ctx context.Context, accountName, password string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Users.GetUserByAccountName(ctx, accountName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same error as a wrong password, on purpose.
			l.Info("login failed: unknown account")
			return domain.LoginResult{}, ErrInvalidCredentials
		}
		return domain.LoginResult{}, fmt.Errorf("%w: user lookup: %s", ErrStoreUnavailable, err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login failed: password mismatch", slog.Int64("user_id", u.ID))
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	if u.Status == domain.StatusDisabled {
		l.Info("login rejected: account disabled", slog.Int64("user_id", u.ID))
		return domain.LoginResult{}, ErrAccountDisabled
	}

	identity := domain.Identity{
		UserID:      u.ID,
		AccountName: u.AccountName,
		Role:        u.Role,
	}

	accessToken, refreshToken, err := s.issuePair(identity)
	if err != nil {
		return domain.LoginResult{}, err
	}

	// The write must complete before the response; no fire-and-forget.
	// Overwriting the slot invalidates any refresh token from a prior
	// login, so the most recent session is the only live one.
	if err := s.putSlot(ctx, u.ID, refreshToken); err != nil {
		return domain.LoginResult{}, err
	}

	l.Info("login succeeded", slog.Int64("user_id", u.ID), slog.String("role", u.Role.String()))

	return domain.LoginResult{
		ID:           identity.UserID,
		AccountName:  identity.AccountName,
		Role:         identity.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh validates a presented refresh token against both its signature
// and the server-side slot, then rotates it: a new refresh token replaces
// the slot value and the presented one can never be used again.
func (s *SessionService) Refresh(ctx context.Context, presented string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	if presented == "" {
		return domain.LoginResult{}, ErrSessionExpired
	}

	claims, err := s.Verifier.Verify(presented)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			l.Info("refresh rejected: token expired")
		} else {
			l.Warn("refresh rejected: token invalid", "err", err)
		}
		return domain.LoginResult{}, ErrSessionExpired
	}

	stored, err := s.getSlot(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			// Never logged in, logged out, or slot expired.
			l.Info("refresh rejected: no stored session", slog.Int64("user_id", claims.UserID))
			return domain.LoginResult{}, ErrSessionExpired
		}
		return domain.LoginResult{}, err
	}

	// A cryptographically valid token that is not byte-equal to the slot
	// is a superseded token being replayed. It gets the same answer as an
	// expired one.
	if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) != 1 {
		l.Warn("refresh rejected: superseded token replayed", slog.Int64("user_id", claims.UserID))
		return domain.LoginResult{}, ErrSessionExpired
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		l.Warn("refresh rejected: unknown role in claims", "role", claims.Role)
		return domain.LoginResult{}, ErrSessionExpired
	}

	identity := domain.Identity{
		UserID:      claims.UserID,
		AccountName: claims.AccountName,
		Role:        role,
	}

	accessToken, refreshToken, err := s.issuePair(identity)
	if err != nil {
		return domain.LoginResult{}, err
	}

	if err := s.putSlot(ctx, identity.UserID, refreshToken); err != nil {
		return domain.LoginResult{}, err
	}

	l.Info("session refreshed", slog.Int64("user_id", identity.UserID))

	return domain.LoginResult{
		ID:           identity.UserID,
		AccountName:  identity.AccountName,
		Role:         identity.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout deletes the user's session slot. Deleting an absent slot is
// success; already-issued access tokens stay valid until natural expiry,
// which is the documented stateless-token tradeoff.
func (s *SessionService) Logout(ctx context.Context, identity domain.Identity) error {
	l := slogx.FromContext(ctx)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.Sessions.Delete(ctx, identity.UserID); err != nil {
		return fmt.Errorf("%w: session delete: %s", ErrStoreUnavailable, err)
	}

	l.Info("logout", slog.Int64("user_id", identity.UserID))
	return nil
}

// issuePair mints an access and a refresh token from the same identity.
func (s *SessionService) issuePair(identity domain.Identity) (access, refresh string, err error) {
	now := time.Now()

	access, err = s.Signer.Sign(jwtx.NewIdentityClaims(
		identity.UserID, identity.AccountName, identity.Role.String(),
		s.AccessTTL, s.Issuer, now,
	))
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refresh, err = s.Signer.Sign(jwtx.NewIdentityClaims(
		identity.UserID, identity.AccountName, identity.Role.String(),
		s.RefreshTTL, s.Issuer, now,
	))
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}

	return access, refresh, nil
}

func (s *SessionService) putSlot(ctx context.Context, userID int64, token string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.Sessions.Put(ctx, userID, token, s.RefreshTTL); err != nil {
		return fmt.Errorf("%w: session put: %s", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SessionService) getSlot(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stored, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: session get: %s", ErrStoreUnavailable, err)
	}
	return stored, nil
}

func (s *SessionService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.StoreTimeout)
}
