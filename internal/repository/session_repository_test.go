package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionStoreTest(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionStoreSaveAndExists(t *testing.T) {
	store, mr := newSessionStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", "u1", time.Hour))

	live, err := store.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, live)

	val, err := mr.Get("session:abc")
	require.NoError(t, err)
	assert.Equal(t, "u1", val)
}

func TestSessionStoreExistsUnknown(t *testing.T) {
	store, _ := newSessionStoreTest(t)

	live, err := store.Exists(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, live)
}

func TestSessionStoreExpiry(t *testing.T) {
	store, mr := newSessionStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", "u1", time.Minute))
	mr.FastForward(2 * time.Minute)

	live, err := store.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, live)
}

func TestSessionStoreRevoke(t *testing.T) {
	store, _ := newSessionStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", "u1", time.Hour))
	require.NoError(t, store.Revoke(ctx, "abc"))

	live, err := store.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, live)

	require.NoError(t, store.Revoke(ctx, "abc"))
}
