package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
)

// SessionCache holds the last Query and the last ResultSet of the session.
//
// Writes are serialized: only the component producing a new Query or
// ResultSet calls the Store methods, and each slot is encoded completely
// before a single Put replaces it. Readers therefore only ever decode a
// fully written snapshot.
type SessionCache struct {
	store driven.SessionStore
	mu    sync.Mutex
}

// NewSessionCache creates a session cache over the given store.
func NewSessionCache(store driven.SessionStore) *SessionCache {
	return &SessionCache{store: store}
}

// StoreQuery overwrites the cached query.
func (c *SessionCache) StoreQuery(ctx context.Context, q domain.Query) error {
	return c.put(ctx, driven.SessionKeyQuery, q.Clone())
}

// Query returns the cached query.
// Returns domain.ErrNotFound if no query has been cached this session.
func (c *SessionCache) Query(ctx context.Context) (domain.Query, error) {
	var q domain.Query
	if err := c.get(ctx, driven.SessionKeyQuery, &q); err != nil {
		return domain.Query{}, err
	}
	return q.Clone(), nil
}

// StoreResults overwrites the cached result set.
func (c *SessionCache) StoreResults(ctx context.Context, set domain.ResultSet) error {
	if set.Items == nil {
		set.Items = []domain.ResultItem{}
	}
	return c.put(ctx, driven.SessionKeyResults, set)
}

// Results returns the cached result set.
// Returns domain.ErrNotFound if no set has been cached this session.
func (c *SessionCache) Results(ctx context.Context) (domain.ResultSet, error) {
	var set domain.ResultSet
	if err := c.get(ctx, driven.SessionKeyResults, &set); err != nil {
		return domain.ResultSet{}, err
	}
	return set, nil
}

// Reset empties both slots, as at session start.
func (c *SessionCache) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func (c *SessionCache) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("writing session %s: %w", key, err)
	}
	return nil
}

func (c *SessionCache) get(ctx context.Context, key string, v any) error {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("session %s: %w", key, domain.ErrNotFound)
		}
		return fmt.Errorf("reading session %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding session %s: %w", key, err)
	}
	return nil
}
