package refreshtoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a token id has no live entry: unknown,
// expired, or already consumed.
var ErrTokenNotFound = errors.New("refresh token not found")

// Store maps opaque refresh-token ids to user ids in Redis.
type Store struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewStore creates a Store over the given client. keyPrefix is prepended to
// every token id when building keys (conventionally "refresh:").
func NewStore(client redis.UniversalClient, keyPrefix string) *Store {
	return &Store{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *Store) key(tokenID string) string {
	return s.keyPrefix + tokenID
}

// Save writes tokenID -> userID with the given TTL. Unconditional upsert.
func (s *Store) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("refreshtoken: save: %w", err)
	}
	return nil
}

// Consume atomically fetches and deletes the entry for tokenID, returning
// the owning user id. At most one concurrent caller succeeds per token;
// everyone else gets [ErrTokenNotFound].
func (s *Store) Consume(ctx context.Context, tokenID string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("refreshtoken: consume: %w", err)
	}
	return userID, nil
}

// Peek returns the user id for tokenID without consuming it.
func (s *Store) Peek(ctx context.Context, tokenID string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("refreshtoken: peek: %w", err)
	}
	return userID, nil
}

// Delete removes the entry for tokenID. Idempotent: deleting an absent or
// expired key is not an error.
func (s *Store) Delete(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, s.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("refreshtoken: delete: %w", err)
	}
	return nil
}

// TTL reports the remaining lifetime of tokenID, or [ErrTokenNotFound] when
// no live entry exists.
func (s *Store) TTL(ctx context.Context, tokenID string) (time.Duration, error) {
	d, err := s.client.TTL(ctx, s.key(tokenID)).Result()
	if err != nil {
		return 0, fmt.Errorf("refreshtoken: ttl: %w", err)
	}
	// -2: key does not exist, -1: key without expiry (never written by us).
	if d < 0 {
		return 0, ErrTokenNotFound
	}
	return d, nil
}

// Ping verifies store connectivity, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("refreshtoken: ping: %w", err)
	}
	return nil
}
