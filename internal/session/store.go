package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound signals that a session id has no active binding.
var ErrNotFound = errors.New("session not found")

// Store binds opaque session ids to user ids. Bindings expire after the
// configured TTL and are removed eagerly on logout.
type Store interface {
	Establish(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, sessionID string) (string, error)
	Destroy(ctx context.Context, sessionID string) error
}

const keyPrefix = "session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Establish(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+sessionID, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *redisStore) Resolve(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *redisStore) Destroy(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}
