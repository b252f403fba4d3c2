package driven

import "context"

// Session cache slot names.
const (
	// SessionKeyQuery holds the last submitted Query.
	SessionKeyQuery = "query"

	// SessionKeyResults holds the last ResultSet.
	SessionKeyResults = "result"
)

// SessionStore is a session-scoped key/value store.
// Values are opaque bytes; a Put replaces the whole value atomically so a
// concurrent Get observes either the old or the new value, never a mix.
type SessionStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Clear removes every key of the session.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
