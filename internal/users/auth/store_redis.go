// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/constants"
)

// Hash fields of a session key.
const (
	redisFieldAccountID = "account_id"
	redisFieldLastSeen  = "last_seen"
)

// RedisSessionStore implements [SessionStore] using Redis.
//
// # Layout
//
//   - auth:session:<token>             hash {account_id, last_seen}, expires with the token
//   - auth:account_sessions:<accountID> set of live tokens, used to supersede
type RedisSessionStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisSessionStore creates a store whose keys live as long as a signed token.
func NewRedisSessionStore(client redis.UniversalClient, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return constants.RedisPrefixSession + token
}

func accountSessionsKey(accountID int64) string {
	return constants.RedisPrefixAccountSessions + strconv.FormatInt(accountID, 10)
}

/*
Insert writes the session hash and indexes it under its account in one MULTI/EXEC.

Parameters:
  - ctx: context.Context
  - session: *Session

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Insert(ctx context.Context, session *Session) error {
	key := sessionKey(session.Token)
	index := accountSessionsKey(session.AccountID)

	_, err := store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			redisFieldAccountID, session.AccountID,
			redisFieldLastSeen, session.LastSeen.UTC().Unix(),
		)
		pipe.Expire(ctx, key, store.ttl)
		pipe.SAdd(ctx, index, session.Token)
		pipe.Expire(ctx, index, store.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_store_insert_failed: %w", err)
	}

	return nil
}

// FindByToken reads the session hash. A missing or expired key is ErrSessionNotFound.
func (store *RedisSessionStore) FindByToken(ctx context.Context, token string) (*Session, error) {
	values, err := store.client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_session_store_find_failed: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrSessionNotFound
	}

	accountID, err := strconv.ParseInt(values[redisFieldAccountID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("redis_session_store_corrupt_account_id: %w", err)
	}
	lastSeen, err := strconv.ParseInt(values[redisFieldLastSeen], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("redis_session_store_corrupt_last_seen: %w", err)
	}

	return &Session{
		Token:     token,
		AccountID: accountID,
		LastSeen:  time.Unix(lastSeen, 0).UTC(),
	}, nil
}

/*
DeleteAllForAccount deletes every indexed session of the account and drops them from the index.

A login racing with this call may leave its own fresh session behind; that session is
the one the racing login just returned, which is the last-write-wins outcome.
*/
func (store *RedisSessionStore) DeleteAllForAccount(ctx context.Context, accountID int64) (int64, error) {
	index := accountSessionsKey(accountID)

	tokens, err := store.client.SMembers(ctx, index).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_session_store_list_failed: %w", err)
	}

	keys := make([]string, 0, len(tokens))
	for _, token := range tokens {
		keys = append(keys, sessionKey(token))
	}

	var deleted *redis.IntCmd
	_, err = store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(tokens) > 0 {
			deleted = pipe.Del(ctx, keys...)
			pipe.SRem(ctx, index, toAny(tokens)...)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_session_store_delete_all_failed: %w", err)
	}

	if deleted == nil {
		return 0, nil
	}
	return deleted.Val(), nil
}

// DeleteByToken removes one session and its index entry. Unknown tokens are ignored.
func (store *RedisSessionStore) DeleteByToken(ctx context.Context, token string) error {
	key := sessionKey(token)

	rawAccountID, err := store.client.HGet(ctx, key, redisFieldAccountID).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis_session_store_delete_lookup_failed: %w", err)
	}

	_, err = store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if accountID, parseErr := strconv.ParseInt(rawAccountID, 10, 64); parseErr == nil {
			pipe.SRem(ctx, accountSessionsKey(accountID), token)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_store_delete_failed: %w", err)
	}

	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
