// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth

import "context"

// # Account Data Access

// AccountRepository defines the data access contract for the credential store.
type AccountRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *Account: Hydrated entity including the password hash
		  - error: ErrAccountNotFound or storage failures
	*/
	FindByID(ctx context.Context, id int64) (*Account, error)

	/*
		FindByEmail returns the account with exactly this email.

		Returns:
		  - *Account: Hydrated entity including the password hash
		  - error: ErrAccountNotFound or storage failures
	*/
	FindByEmail(ctx context.Context, email string) (*Account, error)

	/*
		Create persists a new account and fills in its ID and CreatedAt.

		Returns:
		  - error: apperr.DuplicateEmail on a unique violation, or storage failures
	*/
	Create(ctx context.Context, account *Account) error

	/*
		UpdatePassword replaces only the password hash.

		Returns:
		  - error: ErrAccountNotFound or storage failures
	*/
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// # Session Data Access

// SessionStore persists session records. Implementations: Postgres and Redis.
type SessionStore interface {

	// Insert stores a new session.
	Insert(ctx context.Context, session *Session) error

	// FindByToken returns the session or ErrSessionNotFound. It has no side effects.
	FindByToken(ctx context.Context, token string) (*Session, error)

	// DeleteAllForAccount removes every session of the account and reports how many.
	DeleteAllForAccount(ctx context.Context, accountID int64) (int64, error)

	// DeleteByToken removes one session. Deleting an unknown token is not an error.
	DeleteByToken(ctx context.Context, token string) error
}
