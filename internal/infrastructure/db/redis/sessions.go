package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks live sessions in Redis.
// Key layout:
//
//	session:<id>       -> user id, expires with the token
//	sessions:user:<id> -> set of the user's session ids, for revoke-all
//
// Set members whose session key has already expired are harmless: lookups go
// through the session key, and the set itself carries the same TTL refreshed
// on every mint.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// Sessions expire after ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Put records a new live session for the user.
func (s *SessionStore) Put(ctx context.Context, sessionID, userID string) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(sessionID), userID, s.ttl)
	pipe.SAdd(ctx, userKey(userID), sessionID)
	pipe.Expire(ctx, userKey(userID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

// Exists reports whether the session is still live.
func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("session exists: %w", err)
	}
	return n > 0, nil
}

// Delete revokes a single session.
func (s *SessionStore) Delete(ctx context.Context, sessionID, userID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.SRem(ctx, userKey(userID), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// DeleteAll revokes every live session belonging to the user.
func (s *SessionStore) DeleteAll(ctx context.Context, userID string) error {
	ids, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("session list: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, sessionKey(id))
	}
	pipe.Del(ctx, userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session delete all: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func userKey(userID string) string {
	return "sessions:user:" + userID
}
