package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces the refresh-token slots in a shared Redis.
const keyPrefix = "user:refresh:token:"

// RedisStore keeps refresh-token slots in Redis. SET with expiry is
// atomic per key, which is exactly the overwrite semantics the slot
// needs; TTL makes abandoned sessions self-expire.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig carries the connection parameters.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection before
// returning, so a misconfigured address fails at startup instead of on
// the first login.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("session: connect redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Put(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("session: put: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (string, error) {
	val, err := s.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: get: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	// DEL on a missing key is a no-op in Redis, which gives us idempotent
	// logout for free.
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}
