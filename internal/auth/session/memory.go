package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and single-node dev
// setups. Expiry is checked lazily on read; there is no background
// sweeper because a dev instance's slot count is tiny.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[int64]memorySlot
}

type memorySlot struct {
	token     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[int64]memorySlot)}
}

func (s *MemoryStore) Put(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[userID] = memorySlot{token: token, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, userID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[userID]
	if !ok {
		return "", ErrNotFound
	}
	if time.Now().After(slot.expiresAt) {
		delete(s.slots, userID)
		return "", ErrNotFound
	}
	return slot.token, nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, userID)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close() error { return nil }
