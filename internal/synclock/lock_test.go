package synclock_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessreview/internal/synclock"
)

func TestLocal_TryLock(t *testing.T) {
	l := synclock.NewLocal()
	ctx := context.Background()

	release, ok, err := l.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be refused")

	release()
	release2, ok, err := l.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	release2()
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedis_ExclusiveAcrossInstances(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	a := synclock.NewRedis(rdb, "", time.Minute)
	b := synclock.NewRedis(rdb, "", time.Minute)

	release, ok, err := a.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists(synclock.DefaultKey))

	_, ok, err = b.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	assert.False(t, mr.Exists(synclock.DefaultKey))

	release, ok, err = b.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	release()
}

func TestRedis_ExpiredLockIsNotReleasedByOldHolder(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	l := synclock.NewRedis(rdb, "lock:test", time.Second)

	staleRelease, ok, err := l.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	freshRelease, ok, err := l.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	staleRelease()
	assert.True(t, mr.Exists("lock:test"), "stale holder must not delete the new lock")

	freshRelease()
	assert.False(t, mr.Exists("lock:test"))
}

func TestRedis_Unavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	_, ok, err := synclock.NewRedis(rdb, "", time.Minute).TryLock(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}
