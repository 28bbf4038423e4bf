package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*AppSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewAppSessionStore(rdb, time.Hour), mr
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "sid-1", "user-1"))

	as, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", as.UserID)
	assert.Greater(t, as.ExpiresAt, as.IssuedAt)
}

func TestGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestTouchExtendsExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "sid-1", "user-1"))
	before, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)

	mr.FastForward(30 * time.Minute)

	require.NoError(t, store.Touch(ctx, "sid-1"))
	after, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after.ExpiresAt, before.ExpiresAt)

	// TTL 从 Touch 时刻重新起算，再过 45 分钟会话仍在
	mr.FastForward(45 * time.Minute)
	_, err = store.Get(ctx, "sid-1")
	assert.NoError(t, err)
}

func TestSessionExpiresWithoutTouch(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "sid-1", "user-1"))
	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "sid-1", "user-1"))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, redis.Nil)

	// 删除不存在的会话也不报错
	assert.NoError(t, store.Delete(ctx, "sid-1"))
}

func TestRevokeAllForUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "sid-1", "user-1"))
	require.NoError(t, store.Create(ctx, "sid-2", "user-1"))
	require.NoError(t, store.Create(ctx, "sid-other", "user-2"))

	require.NoError(t, store.RevokeAllForUser(ctx, "user-1"))

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, redis.Nil)
	_, err = store.Get(ctx, "sid-2")
	assert.ErrorIs(t, err, redis.Nil)

	// 别的用户不受影响
	as, err := store.Get(ctx, "sid-other")
	require.NoError(t, err)
	assert.Equal(t, "user-2", as.UserID)
}
