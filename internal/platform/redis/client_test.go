// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package redis_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/redis"
)

/*
TestNewClient verifies the session backend is dialled eagerly and that
startup failures are classified.
*/
func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("connects_and_logs", func(t *testing.T) {
		server := miniredis.RunT(t)

		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		client, err := redisstore.NewClient(ctx, "redis://"+server.Addr()+"/2", logger)
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, redisstore.Ping(ctx, client))
		assert.Contains(t, buf.String(), "redis_session_store_connected")
		assert.Contains(t, buf.String(), `"db":2`)
	})

	tests := []struct {
		name    string
		url     func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "invalid_url",
			url:     func(*testing.T) string { return "http://not-redis" },
			wantErr: redisstore.ErrInvalidURL,
		},
		{
			name: "unreachable",
			url: func(t *testing.T) string {
				server := miniredis.RunT(t)
				addr := server.Addr()
				server.Close()
				return "redis://" + addr
			},
			wantErr: redisstore.ErrUnreachable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger := slog.New(slog.DiscardHandler)

			_, err := redisstore.NewClient(ctx, tc.url(t), logger)

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

/*
TestPing verifies the readiness check reports an outage after startup.
*/
func TestPing(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.DiscardHandler)

	client, err := redisstore.NewClient(context.Background(), "redis://"+server.Addr(), logger)
	require.NoError(t, err)
	defer client.Close()

	server.Close()

	assert.ErrorIs(t, redisstore.Ping(context.Background(), client), redisstore.ErrUnreachable)
}
