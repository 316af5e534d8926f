package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ailab/authd/internal/auth/domain"
	"github.com/ailab/authd/internal/auth/store"
	"github.com/ailab/authd/pkg/cryptox"
)

// UserService wraps the user CRUD operations around the credential store.
// Phone numbers are encrypted before they hit the database and decrypted
// on the way out; with no cipher configured both are pass-through.
type UserService struct {
	Users  store.Users
	Cipher *cryptox.FieldCipher
}

// Get returns a user's record without its password hash.
func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("%w: user lookup: %s", ErrStoreUnavailable, err)
	}

	u.PasswordHash = ""
	u.Phone, err = s.Cipher.Decrypt(u.Phone)
	if err != nil {
		return domain.User{}, fmt.Errorf("decrypt phone: %w", err)
	}
	return u, nil
}

// Create hashes the password, encrypts PII and inserts the record.
func (s *UserService) Create(ctx context.Context, u domain.User, password string) (int64, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	u.Phone, err = s.Cipher.Encrypt(u.Phone)
	if err != nil {
		return 0, fmt.Errorf("encrypt phone: %w", err)
	}

	id, err := s.Users.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return 0, ErrAccountExists
		}
		return 0, fmt.Errorf("%w: user create: %s", ErrStoreUnavailable, err)
	}
	return id, nil
}

// Update mutates the editable profile fields of an existing user.
func (s *UserService) Update(ctx context.Context, u domain.User) error {
	var err error
	u.Phone, err = s.Cipher.Encrypt(u.Phone)
	if err != nil {
		return fmt.Errorf("encrypt phone: %w", err)
	}

	if err := s.Users.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: user update: %s", ErrStoreUnavailable, err)
	}
	return nil
}

// UpdateStatus enables or disables an account. A disabled account can no
// longer log in; tokens already issued last until their natural expiry.
func (s *UserService) UpdateStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	if err := s.Users.UpdateUserStatus(ctx, userID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: status update: %s", ErrStoreUnavailable, err)
	}
	return nil
}

// List returns one page of users (1-based pageNum) plus the total count.
func (s *UserService) List(ctx context.Context, pageNum, pageSize int64) ([]domain.User, int64, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	total, err := s.Users.CountUsers(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: user count: %s", ErrStoreUnavailable, err)
	}

	users, err := s.Users.ListUsers(ctx, (pageNum-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: user list: %s", ErrStoreUnavailable, err)
	}

	for i := range users {
		users[i].PasswordHash = ""
		users[i].Phone, err = s.Cipher.Decrypt(users[i].Phone)
		if err != nil {
			return nil, 0, fmt.Errorf("decrypt phone: %w", err)
		}
	}

	return users, total, nil
}
