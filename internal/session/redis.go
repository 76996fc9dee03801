package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/homestylefoods/storefront-backend/pkg/redis"
)

// RedisStore persists sessions as JSON records with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps a connected Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (Session, error) {
	raw, err := r.client.Get(ctx, r.client.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("loading session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, fmt.Errorf("decoding session: %w", err)
	}

	// Sliding expiry: touching on read keeps active visitors logged in.
	_ = r.client.Touch(ctx, r.client.SessionKey(sessionID), r.ttl)

	return sess, nil
}

func (r *RedisStore) Set(ctx context.Context, sessionID string, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := r.client.Set(ctx, r.client.SessionKey(sessionID), string(data), r.ttl); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (r *RedisStore) Del(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.client.SessionKey(sessionID)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
