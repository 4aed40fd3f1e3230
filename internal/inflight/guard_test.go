package inflight

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func exerciseGuard(t *testing.T, g Guard) {
	t.Helper()
	ctx := context.Background()

	release, ok, err := g.Acquire(ctx, "u1:r1")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = g.Acquire(ctx, "u1:r1")
	require.NoError(t, err)
	require.False(t, ok, "second claim on a busy key must be refused")

	other, ok, err := g.Acquire(ctx, "u1:r2")
	require.NoError(t, err)
	require.True(t, ok, "different keys are independent")
	other()

	release()
	release() // idempotent

	again, ok, err := g.Acquire(ctx, "u1:r1")
	require.NoError(t, err)
	require.True(t, ok)
	again()
}

func TestMemoryGuard(t *testing.T) {
	exerciseGuard(t, NewMemoryGuard())
}

func TestRedisGuard(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	exerciseGuard(t, NewRedisGuard(rdb, "fav:toggle:", time.Second))
}

func TestRedisGuardExpires(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	g := NewRedisGuard(rdb, "fav:toggle:", time.Second)
	_, ok, err := g.Acquire(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	release, ok, err := g.Acquire(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	release()
}

func TestRedisGuardStaleReleaseKeepsNewClaim(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	g := NewRedisGuard(rdb, "p:", time.Second)
	stale, ok, _ := g.Acquire(context.Background(), "k")
	require.True(t, ok)
	mr.FastForward(2 * time.Second)

	_, ok, _ = g.Acquire(context.Background(), "k")
	require.True(t, ok)

	stale()
	require.True(t, mr.Exists("p:k"), "expired holder must not delete the new claim")
}
