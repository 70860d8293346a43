package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewWithClient(rdb, time.Minute), mr
}

func TestSetThenGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var out []row
	v, hit, err := c.Get(ctx, "assets", "q=laptop", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Zero(t, v)

	require.NoError(t, c.Set(ctx, "assets", v, "q=laptop", []row{{1, "Laptop"}}))
	_, hit, err = c.Get(ctx, "assets", "q=laptop", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []row{{1, "Laptop"}}, out)

	_, hit, err = c.Get(ctx, "assets", "q=printer", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidateOrphansOnlyThatCollection(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "assets", 0, "", []row{{1, "A"}}))
	require.NoError(t, c.Set(ctx, "categories", 0, "", []row{{2, "B"}}))
	require.NoError(t, c.Invalidate(ctx, "assets"))

	var out []row
	v, hit, err := c.Get(ctx, "assets", "", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(1), v)

	_, hit, err = c.Get(ctx, "categories", "", &out)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestFillAfterInvalidateIsDiscarded(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var out []row
	v, hit, err := c.Get(ctx, "assets", "", &out)
	require.NoError(t, err)
	require.False(t, hit)

	// a write commits and invalidates while the miss is being filled
	require.NoError(t, c.Invalidate(ctx, "assets"))
	require.NoError(t, c.Set(ctx, "assets", v, "", []row{{1, "Laptop"}}))

	v2, hit, err := c.Get(ctx, "assets", "", &out)
	require.NoError(t, err)
	assert.False(t, hit, "rows read before the write must not be served")
	assert.Equal(t, v+1, v2)

	require.NoError(t, c.Set(ctx, "assets", v2, "", []row{{1, "Laptop"}, {2, "Monitor"}}))
	_, hit, err = c.Get(ctx, "assets", "", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Len(t, out, 2)
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "venues", 0, "", []row{{1, "Salon"}}))
	mr.FastForward(2 * time.Minute)

	var out []row
	_, hit, err := c.Get(ctx, "venues", "", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisErrorsSurface(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var out []row
	_, _, err := c.Get(context.Background(), "assets", "", &out)
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c ListCache = Noop{}
	var out []row
	require.NoError(t, c.Set(context.Background(), "a", 0, "", []row{{1, "x"}}))
	_, hit, err := c.Get(context.Background(), "a", "", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Invalidate(context.Background(), "a"))
}
