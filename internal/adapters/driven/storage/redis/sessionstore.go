package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// KeyPrefix namespaces session hashes.
const KeyPrefix = "sercha-media:session:"

// defaultTTL applies when no positive TTL is configured.
const defaultTTL = time.Hour

// SessionStore stores session slots as fields of a Redis hash.
type SessionStore struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
	owned  bool
}

// NewSessionStore connects to the Redis server at url (redis://host:port/db)
// and returns a store for sessionID. The store owns the client.
func NewSessionStore(ctx context.Context, url, sessionID string, ttl time.Duration) (*SessionStore, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	s := NewSessionStoreWithClient(client, sessionID, ttl)
	s.owned = true
	return s, nil
}

// NewSessionStoreWithClient returns a store for sessionID on an existing client.
// Close does not close a client passed in this way.
func NewSessionStoreWithClient(client *goredis.Client, sessionID string, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionStore{
		client: client,
		key:    SessionKey(sessionID),
		ttl:    ttl,
	}
}

// SessionKey returns the Redis key of a session's hash.
func SessionKey(sessionID string) string {
	return KeyPrefix + sessionID
}

// Get returns the value stored in slot key.
func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.HGet(ctx, s.key, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return val, nil
}

// Put sets slot key and refreshes the session TTL in one transaction.
func (s *SessionStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, s.key, key, value)
		pipe.Expire(ctx, s.key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

// Clear deletes the session hash.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Close closes the client if the store created it.
func (s *SessionStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
