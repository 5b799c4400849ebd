package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", payload{Name: "a", Score: 1.5}, time.Minute))

	var got payload
	hit, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "a", Score: 1.5}, got)
}

func TestMemoryCacheMissOnUnknownKey(t *testing.T) {
	c := NewMemoryCache()

	var got payload
	hit, err := c.Get(context.Background(), "nope", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheLazyExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	now := time.Now()
	c.now = func() time.Time { return now }
	require.NoError(t, c.Set(ctx, "k1", payload{Name: "a"}, time.Minute))

	// One tick before the TTL boundary is still a hit.
	c.now = func() time.Time { return now.Add(time.Minute - time.Millisecond) }
	var got payload
	hit, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, hit)

	// At the boundary the entry is expired and evicted on read.
	c.now = func() time.Time { return now.Add(time.Minute) }
	hit, err = c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, c.entries)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", payload{Name: "old"}, time.Minute))
	require.NoError(t, c.Set(ctx, "k1", payload{Name: "new"}, time.Minute))

	var got payload
	hit, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "new", got.Name)
}
