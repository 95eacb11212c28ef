// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/auth"
)

func newRedisStore(t *testing.T) (*auth.RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewRedisSessionStore(client, time.Hour), server
}

/*
TestRedisSessionStore exercises the key layout against an in-process Redis.
*/
func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	lastSeen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("insert_and_find", func(t *testing.T) {
		store, server := newRedisStore(t)

		require.NoError(t, store.Insert(ctx, &auth.Session{Token: "tok-1", AccountID: 42, LastSeen: lastSeen}))

		session, err := store.FindByToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, int64(42), session.AccountID)
		assert.Equal(t, lastSeen, session.LastSeen)

		assert.True(t, server.Exists("auth:session:tok-1"))
		assert.Equal(t, time.Hour, server.TTL("auth:session:tok-1"))
		members, err := server.Members("auth:account_sessions:42")
		require.NoError(t, err)
		assert.Equal(t, []string{"tok-1"}, members)
	})

	t.Run("missing_token", func(t *testing.T) {
		store, _ := newRedisStore(t)

		_, err := store.FindByToken(ctx, "nope")
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	})

	t.Run("expires_with_ttl", func(t *testing.T) {
		store, server := newRedisStore(t)
		require.NoError(t, store.Insert(ctx, &auth.Session{Token: "tok-1", AccountID: 42, LastSeen: lastSeen}))

		server.FastForward(time.Hour + time.Second)

		_, err := store.FindByToken(ctx, "tok-1")
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	})

	t.Run("delete_all_for_account", func(t *testing.T) {
		store, _ := newRedisStore(t)
		require.NoError(t, store.Insert(ctx, &auth.Session{Token: "a", AccountID: 1, LastSeen: lastSeen}))
		require.NoError(t, store.Insert(ctx, &auth.Session{Token: "b", AccountID: 1, LastSeen: lastSeen}))
		require.NoError(t, store.Insert(ctx, &auth.Session{Token: "c", AccountID: 2, LastSeen: lastSeen}))

		removed, err := store.DeleteAllForAccount(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		_, err = store.FindByToken(ctx, "a")
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
		_, err = store.FindByToken(ctx, "c")
		assert.NoError(t, err)

		removed, err = store.DeleteAllForAccount(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("delete_by_token_is_idempotent", func(t *testing.T) {
		store, server := newRedisStore(t)
		require.NoError(t, store.Insert(ctx, &auth.Session{Token: "a", AccountID: 1, LastSeen: lastSeen}))
		require.NoError(t, store.Insert(ctx, &auth.Session{Token: "b", AccountID: 1, LastSeen: lastSeen}))

		require.NoError(t, store.DeleteByToken(ctx, "a"))
		require.NoError(t, store.DeleteByToken(ctx, "a"))

		members, err := server.Members("auth:account_sessions:1")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, members)
	})
}
