package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, 1, "token-a", time.Minute))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "token-a", got)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	_, err := s.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, 1, "token-a", time.Minute))
	require.NoError(t, s.Put(ctx, 1, "token-b", time.Minute))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "token-b", got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, 1, "token-a", -time.Second))

	_, err := s.Get(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, 1, "token-a", time.Minute))
	require.NoError(t, s.Delete(ctx, 1))
	require.NoError(t, s.Delete(ctx, 1))

	_, err := s.Get(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreHonorsContext(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, s.Put(ctx, 1, "token-a", time.Minute))
	_, err := s.Get(ctx, 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Error(t, s.Delete(ctx, 1))
	require.Error(t, s.Ping(ctx))
}

func TestMemoryStoreConcurrentWritersLastWins(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Put(ctx, 1, fmt.Sprintf("token-%d", i), time.Minute)
		}(i)
	}
	wg.Wait()

	// Whatever write landed last, the slot holds exactly one valid value.
	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, got, "token-")
}
