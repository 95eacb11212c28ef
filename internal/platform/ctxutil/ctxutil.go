// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package ctxutil carries per-request values through [context.Context].

The middleware chain attaches a request ID, a logger scoped to that request and,
once a session cookie is verified, the caller's [sec.Identity]. Services read
them back without depending on net/http.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
)

// Unexported struct keys cannot collide with keys from other packages.
type (
	requestIDKey struct{}
	loggerKey    struct{}
	identityKey  struct{}
)

func lookup[T any](ctx context.Context, key any) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// WithRequestID tags ctx with the correlation ID echoed in X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns "" outside of an HTTP request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, requestIDKey{})
	return id
}

// WithLogger attaches the logger that services should write to.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger falls back to [slog.Default] so background jobs and tests never get nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, loggerKey{}); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithIdentity marks the request as authenticated.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity returns nil for anonymous callers.
func GetIdentity(ctx context.Context) *sec.Identity {
	identity, _ := lookup[*sec.Identity](ctx, identityKey{})
	return identity
}
