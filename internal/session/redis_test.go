package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/ANITHAC1201/joicy/internal/users"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "http://nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis url")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "redis://127.0.0.1:1/0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}

func TestRedisStore_TransportErrors(t *testing.T) {
	store := NewRedisStore(unreachableRedis(t))
	ctx := context.Background()

	require.Error(t, store.Save(ctx, "s1", alice, time.Minute))

	_, err := store.Load(ctx, "s1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrSessionNotFound))

	require.Error(t, store.Delete(ctx, "s1"))
	require.Error(t, store.DeleteUser(ctx, alice.ID))
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "flyscope:session:abc", sessionKey("abc"))
	assert.Equal(t, "flyscope:user-sessions:42", userKey(42))
}

func newMiniRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStore_SaveLoad(t *testing.T) {
	store, mr := newMiniRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", alice, time.Hour))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	members, err := mr.Members(userKey(alice.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, members)

	_, err = store.Load(ctx, "unknown")
	require.ErrorIs(t, err, common.ErrSessionNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newMiniRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", alice, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(sessionKey("s1")))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "s1")
	require.ErrorIs(t, err, common.ErrSessionNotFound)
	assert.False(t, mr.Exists(userKey(alice.ID)))
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := newMiniRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", alice, time.Hour))
	require.NoError(t, store.Save(ctx, "s2", alice, time.Hour))

	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Load(ctx, "s1")
	require.ErrorIs(t, err, common.ErrSessionNotFound)

	members, err := mr.Members(userKey(alice.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, members)

	// unknown ids are not an error
	require.NoError(t, store.Delete(ctx, "s1"))
}

func TestRedisStore_DeleteUser(t *testing.T) {
	store, mr := newMiniRedisStore(t)
	ctx := context.Background()
	bob := users.Identity{ID: 2, Username: "bob", Email: "bob@x.com", Role: common.RoleUser}

	require.NoError(t, store.Save(ctx, "a1", alice, time.Hour))
	require.NoError(t, store.Save(ctx, "a2", alice, time.Hour))
	require.NoError(t, store.Save(ctx, "b1", bob, time.Hour))

	require.NoError(t, store.DeleteUser(ctx, alice.ID))

	for _, id := range []string{"a1", "a2"} {
		_, err := store.Load(ctx, id)
		require.ErrorIs(t, err, common.ErrSessionNotFound, id)
	}
	assert.False(t, mr.Exists(userKey(alice.ID)))

	got, err := store.Load(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	// a user without sessions is a no-op
	require.NoError(t, store.DeleteUser(ctx, 99))
}

func TestManager_RedisRevokeUser(t *testing.T) {
	store, _ := newMiniRedisStore(t)
	m := NewManager(store, []byte("secret"), time.Hour)
	ctx := context.Background()

	tok, err := m.Issue(ctx, alice)
	require.NoError(t, err)

	_, err = m.Resolve(ctx, tok)
	require.NoError(t, err)

	require.NoError(t, m.RevokeUser(ctx, alice.ID))

	_, err = m.Resolve(ctx, tok)
	require.ErrorIs(t, err, common.ErrSessionNotFound)
}
