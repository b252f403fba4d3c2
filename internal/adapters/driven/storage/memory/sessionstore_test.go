package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
)

func TestSessionStore_GetMissing(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Get(context.Background(), driven.SessionKeyQuery)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	require.NoError(t, store.Put(ctx, driven.SessionKeyResults, []byte(`{"items":[]}`)))
	require.NoError(t, store.Put(ctx, driven.SessionKeyResults, []byte(`{"items":[1]}`)))

	got, err := store.Get(ctx, driven.SessionKeyResults)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[1]}`, string(got))
}

func TestSessionStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	value := []byte("abc")

	require.NoError(t, store.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSessionStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	require.NoError(t, store.Put(ctx, driven.SessionKeyQuery, []byte("q")))
	require.NoError(t, store.Put(ctx, driven.SessionKeyResults, []byte("r")))

	require.NoError(t, store.Clear(ctx))

	_, err := store.Get(ctx, driven.SessionKeyQuery)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(ctx, driven.SessionKeyResults)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, store.Close())
}

func TestSessionStore_ConcurrentReadersSeeWholeValues(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	old, next := []byte("old-value"), []byte("new-value")
	require.NoError(t, store.Put(ctx, "k", old))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = store.Put(ctx, "k", next)
			_ = store.Put(ctx, "k", old)
		}
	}()
	for i := 0; i < 100; i++ {
		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Contains(t, []string{"old-value", "new-value"}, string(got))
	}
	wg.Wait()
}
