package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// Storage keys owned by the session manager. No other component writes them.
const (
	userKeyPrefix  = "eyfs_user:"
	tokenKeyPrefix = "eyfs_token:"
)

// Identity is the serialized user-identity blob persisted alongside the token.
type Identity struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// SessionStore persists session records between requests.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, identity Identity, token string, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (Identity, string, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps session records in Redis under the eyfs_user and
// eyfs_token key pair.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore constructs a Redis backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Save writes both records with the session lifetime.
func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, identity Identity, token string, ttl time.Duration) error {
	blob, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("auth: marshal identity: %w", err)
	}
	if err := s.client.Set(ctx, userKeyPrefix+sessionID, blob, ttl).Err(); err != nil {
		return fmt.Errorf("auth: store identity: %w", err)
	}
	if err := s.client.Set(ctx, tokenKeyPrefix+sessionID, token, ttl).Err(); err != nil {
		return fmt.Errorf("auth: store token: %w", err)
	}
	return nil
}

// Load reads both records. A missing or corrupt record yields ErrNotFound so
// rehydration can fall through to unauthenticated.
func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (Identity, string, error) {
	blob, err := s.client.Get(ctx, userKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, "", shared.ErrNotFound
		}
		return Identity{}, "", err
	}
	var identity Identity
	if err := json.Unmarshal(blob, &identity); err != nil {
		return Identity{}, "", shared.ErrNotFound
	}
	token, err := s.client.Get(ctx, tokenKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, "", shared.ErrNotFound
		}
		return Identity{}, "", err
	}
	return identity, token, nil
}

// Delete clears both records. Missing keys are not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, userKeyPrefix+sessionID, tokenKeyPrefix+sessionID).Err()
}

var _ SessionStore = (*RedisSessionStore)(nil)
