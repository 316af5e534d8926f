package service

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ailab/authd/internal/auth/domain"
	"github.com/ailab/authd/internal/auth/store"
	"github.com/ailab/authd/pkg/cryptox"
)

// crudUsers is a fuller in-memory store.Users for the CRUD tests.
type crudUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
}

func newCrudUsers() *crudUsers {
	return &crudUsers{nextID: 1, byID: make(map[int64]domain.User)}
}

func (f *crudUsers) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *crudUsers) GetUserByAccountName(ctx context.Context, accountName string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.AccountName == accountName {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (f *crudUsers) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.AccountName == u.AccountName {
			return 0, store.ErrAlreadyExists
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return u.ID, nil
}

func (f *crudUsers) UpdateUser(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	existing.Name = u.Name
	existing.Phone = u.Phone
	existing.Role = u.Role
	existing.Sno = u.Sno
	f.byID[u.ID] = existing
	return nil
}

func (f *crudUsers) UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Status = status
	f.byID[userID] = u
	return nil
}

func (f *crudUsers) ListUsers(ctx context.Context, offset, limit int64) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []domain.User
	for id := f.nextID - 1; id >= 1; id-- {
		if u, ok := f.byID[id]; ok {
			all = append(all, u)
		}
	}
	if offset >= int64(len(all)) {
		return nil, nil
	}
	end := offset + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[offset:end], nil
}

func (f *crudUsers) CountUsers(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

func newUserService(t *testing.T) (*UserService, *crudUsers) {
	t.Helper()

	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	cipher, err := cryptox.NewFieldCipher(key)
	require.NoError(t, err)

	users := newCrudUsers()
	return &UserService{Users: users, Cipher: cipher}, users
}

func TestUserCreateHashesAndEncrypts(t *testing.T) {
	t.Parallel()

	svc, backing := newUserService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.User{
		AccountName: "alice",
		Name:        "Alice",
		Phone:       "13800138000",
		Role:        domain.RoleAdmin,
		Status:      domain.StatusEnabled,
	}, "p@ss1234")
	require.NoError(t, err)
	require.Positive(t, id)

	// What hit the store is neither the plaintext password nor phone.
	raw, err := backing.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.NotEqual(t, "p@ss1234", raw.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("p@ss1234", raw.PasswordHash))
	require.NotEqual(t, "13800138000", raw.Phone)
}

func TestUserGetDecryptsAndStripsHash(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.User{
		AccountName: "alice",
		Phone:       "13800138000",
		Status:      domain.StatusEnabled,
	}, "p@ss1234")
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "13800138000", got.Phone)
	require.Empty(t, got.PasswordHash)
}

func TestUserGetNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService(t)

	_, err := svc.Get(context.Background(), 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserCreateDuplicate(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.User{AccountName: "alice", Status: domain.StatusEnabled}, "pw1")
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.User{AccountName: "alice", Status: domain.StatusEnabled}, "pw2")
	require.ErrorIs(t, err, ErrAccountExists)
}

func TestUserUpdate(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.User{AccountName: "alice", Status: domain.StatusEnabled}, "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, domain.User{ID: id, Name: "Renamed", Phone: "13900139000", Role: domain.RoleAdmin}))

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, "13900139000", got.Phone)
	require.Equal(t, domain.RoleAdmin, got.Role)

	require.ErrorIs(t, svc.Update(ctx, domain.User{ID: 9999}), ErrUserNotFound)
}

func TestUserUpdateStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.User{AccountName: "alice", Status: domain.StatusEnabled}, "pw")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, id, domain.StatusDisabled))

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDisabled, got.Status)

	require.ErrorIs(t, svc.UpdateStatus(ctx, 9999, domain.StatusEnabled), ErrUserNotFound)
}

func TestUserListPaging(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService(t)
	ctx := context.Background()

	names := []string{"u1", "u2", "u3", "u4", "u5"}
	for _, name := range names {
		_, err := svc.Create(ctx, domain.User{AccountName: name, Phone: "13800138000", Status: domain.StatusEnabled}, "pw")
		require.NoError(t, err)
	}

	page, total, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	require.Equal(t, "u5", page[0].AccountName)
	// Phones come back decrypted, hashes stripped.
	require.Equal(t, "13800138000", page[0].Phone)
	require.Empty(t, page[0].PasswordHash)

	page, _, err = svc.List(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "u1", page[0].AccountName)

	// Out-of-range parameters fall back to defaults.
	page, _, err = svc.List(ctx, 0, -5)
	require.NoError(t, err)
	require.Len(t, page, 5)
}
