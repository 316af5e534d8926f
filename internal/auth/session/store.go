// Package session holds the server-side refresh-token slot: one value per
// user, overwritten on every issuance, deleted on logout. The single-key
// atomic overwrite is the only synchronization primitive: concurrent
// logins for the same user race and the last writer wins, which is the
// intended semantics (the most recent session's refresh token is the only
// valid one).
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that no refresh token is stored for a user. It is
// distinct from infrastructure failures, which must never be mistaken
// for an absent slot.
var ErrNotFound = errors.New("session: not found")

// Store is the revocation store: userID -> currently valid refresh token.
type Store interface {
	// Put stores token as the single valid refresh token for userID with
	// the given TTL, unconditionally overwriting any prior value.
	Put(ctx context.Context, userID int64, token string, ttl time.Duration) error

	// Get returns the stored refresh token for userID, or ErrNotFound.
	Get(ctx context.Context, userID int64) (string, error)

	// Delete removes the slot. Deleting an absent key is not an error.
	Delete(ctx context.Context, userID int64) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
