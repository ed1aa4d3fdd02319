package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(clockwork.NewFakeClock())
	ctx := context.Background()

	_, err := c.Get(ctx, "all-brands")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "all-brands", []byte(`["acme"]`), time.Minute, TagBrands))

	value, err := c.Get(ctx, "all-brands")
	require.NoError(t, err)
	assert.Equal(t, `["acme"]`, string(value))
}

func TestMemoryCache_Expiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(clock)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 5*time.Second))

	clock.Advance(4 * time.Second)
	_, err := c.Get(ctx, "k")
	assert.NoError(t, err)

	clock.Advance(time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_NonPositiveTTLSkipsStore(t *testing.T) {
	c := NewMemoryCache(clockwork.NewFakeClock())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_InvalidateByTag(t *testing.T) {
	c := NewMemoryCache(clockwork.NewFakeClock())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "filtered", []byte("1"), time.Minute, TagProducts, TagCategories))
	require.NoError(t, c.Set(ctx, "categories", []byte("2"), time.Minute, TagCategories))
	require.NoError(t, c.Set(ctx, "drivers", []byte("3"), time.Minute, TagDrivers))

	require.NoError(t, c.Invalidate(ctx, TagCategories))

	_, err := c.Get(ctx, "filtered")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "categories")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "drivers")
	assert.NoError(t, err)

	assert.Empty(t, c.tagIndex[TagProducts], "entries removed through one tag leave no trace under another")
}

func TestMemoryCache_SetReplacesTags(t *testing.T) {
	c := NewMemoryCache(clockwork.NewFakeClock())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("old"), time.Minute, TagUsers))
	require.NoError(t, c.Set(ctx, "k", []byte("new"), time.Minute, TagDrivers))

	require.NoError(t, c.Invalidate(ctx, TagUsers))

	value, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", string(value))
}

func TestMemoryCache_ReturnedBytesAreCopies(t *testing.T) {
	c := NewMemoryCache(clockwork.NewFakeClock())
	ctx := context.Background()

	input := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", input, time.Minute))
	input[0] = 'x'

	value, err := c.Get(ctx, "k")
	require.NoError(t, err)
	value[1] = 'y'

	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCache_Sweep(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewMemoryCache(clock)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("1"), time.Second, TagProducts))
	require.NoError(t, c.Set(ctx, "long", []byte("2"), time.Hour, TagProducts))

	clock.Advance(2 * time.Second)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
	assert.Len(t, c.tagIndex[TagProducts], 1)
}
