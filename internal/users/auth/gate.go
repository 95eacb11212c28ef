// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth

import (
	"context"
	"errors"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
)

// Gate turns a presented signed token into an authenticated identity.
type Gate struct {
	accounts AccountRepository
	sessions *SessionRegistry
	tokens   *sec.TokenCodec
}

// NewGate wires the collaborators consulted on every protected request.
func NewGate(accounts AccountRepository, sessions *SessionRegistry, tokens *sec.TokenCodec) *Gate {
	return &Gate{accounts: accounts, sessions: sessions, tokens: tokens}
}

/*
Authenticate runs the per-request pipeline. It stops at the first failing step.

# Pipeline
 1. Verify signature and expiry.
 2. Load the account named by the token.
 3. Refuse suspended accounts with 403.
 4. Require the session named by the token to still exist.

Returns:
  - *sec.Identity: The safe projection of the account
  - error: apperr.Unauthorized, apperr.AccountSuspended or infrastructure failures
*/
func (gate *Gate) Authenticate(ctx context.Context, token string) (*sec.Identity, error) {
	claims, err := gate.tokens.Decode(token)
	if err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return nil, apperr.Unauthorized("Session expired, please log in again")
		}
		return nil, apperr.Unauthorized("Invalid session token")
	}

	account, err := gate.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, err
	}

	if account.IsSuspended() {
		return nil, apperr.AccountSuspended()
	}

	session, err := gate.sessions.FindByToken(ctx, claims.SessionToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperr.Unauthorized("Session has ended, please log in again")
		}
		return nil, err
	}

	if session.AccountID != account.ID {
		return nil, apperr.Unauthorized("Invalid session token")
	}

	return account.Identity(), nil
}
