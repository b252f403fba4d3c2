package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-media/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
)

func TestSessionCache_EmptyAtStart(t *testing.T) {
	cache := NewSessionCache(memory.NewSessionStore())
	ctx := context.Background()

	_, err := cache.Query(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = cache.Results(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionCache_QueryRoundTrip(t *testing.T) {
	cache := NewSessionCache(memory.NewSessionStore())
	ctx := context.Background()
	q := sampleQuery()

	require.NoError(t, cache.StoreQuery(ctx, q))
	got, err := cache.Query(ctx)

	require.NoError(t, err)
	assert.Equal(t, q, got)
}

func TestSessionCache_ResultsRoundTrip(t *testing.T) {
	cache := NewSessionCache(memory.NewSessionStore())
	ctx := context.Background()
	set := domain.ResultSet{Query: sampleQuery(), Items: sampleItems()}

	require.NoError(t, cache.StoreResults(ctx, set))
	got, err := cache.Results(ctx)

	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestSessionCache_NilItemsStoredAsEmpty(t *testing.T) {
	cache := NewSessionCache(memory.NewSessionStore())
	ctx := context.Background()

	require.NoError(t, cache.StoreResults(ctx, domain.ResultSet{Query: sampleQuery()}))
	got, err := cache.Results(ctx)

	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestSessionCache_StoredQueryIsACopy(t *testing.T) {
	cache := NewSessionCache(memory.NewSessionStore())
	ctx := context.Background()
	q := sampleQuery()

	require.NoError(t, cache.StoreQuery(ctx, q))
	q.GenreFilter.Values[0] = "mutated"
	q.Fields[domain.FieldTitle] = domain.TextValue("mutated")

	got, err := cache.Query(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Crime"}, got.GenreFilter.Values)
	assert.Equal(t, "bad", got.Text(domain.FieldTitle))
}

func TestSessionCache_Reset(t *testing.T) {
	cache := NewSessionCache(memory.NewSessionStore())
	ctx := context.Background()
	require.NoError(t, cache.StoreQuery(ctx, sampleQuery()))
	require.NoError(t, cache.StoreResults(ctx, domain.ResultSet{Items: sampleItems()}))

	require.NoError(t, cache.Reset(ctx))

	_, err := cache.Query(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = cache.Results(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionCache_StoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	cache := NewSessionCache(&failingSessionStore{err: boom})
	ctx := context.Background()

	assert.ErrorIs(t, cache.StoreQuery(ctx, sampleQuery()), boom)
	assert.ErrorIs(t, cache.Reset(ctx), boom)
	_, err := cache.Results(ctx)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionCache_CorruptSlot(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, driven.SessionKeyResults, []byte("{truncated")))
	cache := NewSessionCache(store)

	_, err := cache.Results(ctx)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionCache_ReadersSeeWholeSnapshots(t *testing.T) {
	cache := NewSessionCache(memory.NewSessionStore())
	ctx := context.Background()
	small := domain.ResultSet{Items: sampleItems()[:1]}
	large := domain.ResultSet{Items: sampleItems()}
	require.NoError(t, cache.StoreResults(ctx, small))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = cache.StoreResults(ctx, large)
			_ = cache.StoreResults(ctx, small)
		}
	}()
	for i := 0; i < 50; i++ {
		got, err := cache.Results(ctx)
		require.NoError(t, err)
		assert.Contains(t, []int{1, 3}, got.Len())
	}
	wg.Wait()
}
