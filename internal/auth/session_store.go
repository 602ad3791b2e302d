package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound is returned when a session id is absent from the store.
var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionStoreInterface defines the interface for server-side session storage.
// A session exists between login and logout; resolving an unknown id fails.
type SessionStoreInterface interface {
	StoreSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (userID uint, err error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionStore keeps sessions in Redis. Unlike a cache, errors are
// surfaced: a Redis failure must not look like a logged-out user.
type SessionStore struct {
	client *redis.Client
}

var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(addr, password string, db int) *SessionStore {
	return &SessionStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// StoreSession registers a session id for the user with a TTL.
func (s *SessionStore) StoreSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	key := sessionKeyPrefix + sessionID
	if err := s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// GetSession resolves a session id to the user it belongs to.
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (uint, error) {
	key := sessionKeyPrefix + sessionID
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get session: %w", err)
	}
	uid, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode session user id: %w", err)
	}
	return uint(uid), nil
}

// DeleteSession removes a session id from the store.
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
