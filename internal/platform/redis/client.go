// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package redis dials the Redis instance backing the session registry.

It is only used when SESSION_STORE=redis. Sessions then live as expiring keys
and the readiness check pings this client next to Postgres.
*/
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// clientName shows up in CLIENT LIST on the server.
const clientName = "evolve-nova-sessions"

// Session lookups are single-key reads on every authenticated request, so
// timeouts stay short and a small warm pool is enough.
const (
	poolSize     = 10
	minIdleConns = 2
	dialTimeout  = 3 * time.Second
	ioTimeout    = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

var (
	// ErrInvalidURL reports a REDIS_URL that go-redis cannot parse.
	ErrInvalidURL = errors.New("redis: invalid URL")

	// ErrUnreachable reports a server that did not answer PING.
	ErrUnreachable = errors.New("redis: ping failed")
)

func sessionOptions(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	options.ClientName = clientName
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	return options, nil
}

// NewClient connects to redisURL (redis:// or rediss://) and fails fast when the
// server is down, so the API never starts with a dead session backend.
func NewClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := sessionOptions(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_session_store_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Bool("tls", options.TLSConfig != nil),
	)

	return client, nil
}

// Ping is the readiness check for the session backend.
func Ping(ctx context.Context, client redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	return nil
}
