package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeyBytes is the smallest HMAC key we accept. HS256 keys shorter than
// the hash output weaken the MAC, so we refuse them at construction time
// rather than per request.
const MinKeyBytes = 32

// Signer is anything that can turn Claims into a compact signed token.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with a shared symmetric key. It is stateless
// and safe for concurrent use.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 validates the key material and returns a signer.
// A short or empty key is a deployment misconfiguration and is reported
// here, once, instead of failing every issuance.
func NewSignerHS256(key []byte) (*HS256Signer, error) {
	if len(key) < MinKeyBytes {
		return nil, errors.New("jwtx: HS256 key must be at least 32 bytes")
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &HS256Signer{key: k}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign turns claims into a signed compact JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}
