package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("backend.url", "http://localhost:8088"))
	require.NoError(t, store.Set("backend.url", "http://search.local"))

	val, ok := store.Get("backend.url")
	assert.True(t, ok)
	assert.Equal(t, "http://search.local", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("session.ttl_minutes", 15))
	require.NoError(t, store.Set("backend.rate_per_second", 2.5))
	require.NoError(t, store.Set("debug", true))
	require.NoError(t, store.Set("form.genres", []any{"Drama", 3, "Crime"}))

	assert.Equal(t, 15, store.GetInt("session.ttl_minutes"))
	assert.InDelta(t, 2.5, store.GetFloat64("backend.rate_per_second"), 1e-9)
	assert.InDelta(t, 15.0, store.GetFloat64("session.ttl_minutes"), 1e-9)
	assert.True(t, store.GetBool("debug"))
	assert.Equal(t, []string{"Drama", "Crime"}, store.GetStringSlice("form.genres"))
	assert.Equal(t, "", store.GetString("session.ttl_minutes"))
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("counter", n)
			_ = store.GetInt("counter")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("counter")
	assert.True(t, ok)
}
