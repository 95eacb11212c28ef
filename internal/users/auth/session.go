// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/ctxutil"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/uuid"
)

// SessionRegistry owns the lifecycle of server-side sessions.
//
// Every path that must end all sessions of an account (login, password change,
// suspension, deletion) goes through [SessionRegistry.SupersedeAll].
type SessionRegistry struct {
	store SessionStore
	now   func() time.Time
}

// NewSessionRegistry wraps a store. A nil clock means [time.Now].
func NewSessionRegistry(store SessionStore, now func() time.Time) *SessionRegistry {
	if now == nil {
		now = time.Now
	}
	return &SessionRegistry{store: store, now: now}
}

/*
Create opens a new session for the account.

Returns:
  - string: An opaque random token (UUIDv4, 122 random bits)
  - error: Entropy or storage failures
*/
func (registry *SessionRegistry) Create(ctx context.Context, accountID int64) (string, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("session_registry_token_failed: %w", err)
	}

	session := &Session{
		Token:     token,
		AccountID: accountID,
		LastSeen:  registry.now().UTC(),
	}
	if err := registry.store.Insert(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}

// FindByToken returns the live session behind token, or [ErrSessionNotFound].
func (registry *SessionRegistry) FindByToken(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	return registry.store.FindByToken(ctx, token)
}

// SupersedeAll ends every session of the account.
func (registry *SessionRegistry) SupersedeAll(ctx context.Context, accountID int64) error {
	removed, err := registry.store.DeleteAllForAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if removed > 0 {
		ctxutil.GetLogger(ctx).Info("sessions_superseded",
			slog.Int64("user_id", accountID),
			slog.Int64("count", removed),
		)
	}

	return nil
}

// DeleteByToken ends one session. Unknown tokens are a no-op.
func (registry *SessionRegistry) DeleteByToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return registry.store.DeleteByToken(ctx, token)
}
