package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ailab/authd/pkg/idx"
)

// Default token TTLs. Short access tokens limit the blast radius of a
// leaked bearer credential; the refresh TTL mirrors the server-side
// session slot's expiry.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the identity claims carried by both access and refresh
// tokens. The two differ only in TTL; the refresh token's validity is
// additionally conditioned on the server-side session slot.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the numeric account id.
	UserID int64 `json:"uid"`

	// AccountName is the login name the identity was minted for.
	AccountName string `json:"account_name"`

	// Role is the account's role name ("USER", "ADMIN") at issuance time.
	Role string `json:"role"`
}

// NewIdentityClaims builds minimally-correct claims for a token issued
// now. Each call gets a fresh jti, so two tokens minted in the same
// second for the same identity still differ byte-for-byte; the refresh
// rotation depends on that.
func NewIdentityClaims(
	userID int64,
	accountName, role string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        idx.New().String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:      userID,
		AccountName: accountName,
		Role:        role,
	}
}
