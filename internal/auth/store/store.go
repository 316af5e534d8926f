package store

import (
	"context"
	"errors"

	"github.com/ailab/authd/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for durable user records.
// Concrete drivers (sqlite today) implement this. The auth core only
// reads from it; the user CRUD endpoints write.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByAccountName is used during login.
	GetUserByAccountName(ctx context.Context, accountName string) (domain.User, error)

	// CreateUser inserts a new user and returns the generated id.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdateUser mutates name, phone, sno and role; bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// UpdateUserStatus enables or disables an account.
	UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) error

	// ListUsers returns one page of users, newest first.
	ListUsers(ctx context.Context, offset, limit int64) ([]domain.User, error)

	// CountUsers returns the total number of users, for paging.
	CountUsers(ctx context.Context) (int64, error)
}
