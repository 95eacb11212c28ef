// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package account handles profile management and account administration.

Students view and edit their own profile. Administrators list and search
students, edit their name, email or password, suspend or reactivate them, and
delete accounts.

# Architecture

  - Domain: This package depends on the auth package for the Account entity.
  - Security: Suspension, deletion and password resets end every session of the account.
*/
package account

import (
	"context"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/auth"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for account administration.
type AccountRepository interface {
	/*
		FindByID retrieves an account by its ID. The password hash is not loaded.

		Returns:
		  - *auth.Account: Loaded account entity
		  - error: auth.ErrAccountNotFound or storage failures
	*/
	FindByID(ctx context.Context, id int64) (*auth.Account, error)

	/*
		UpdateProfile writes the name and email of an account.

		Returns:
		  - error: apperr.DuplicateEmail, auth.ErrAccountNotFound or storage failures
	*/
	UpdateProfile(ctx context.Context, account *auth.Account) error

	// ListStudents returns one page of students, filtered by params.Search, and the total count.
	ListStudents(ctx context.Context, params pagination.Params) ([]*auth.Account, int, error)

	// UpdateStatus changes the lifecycle status of an account.
	UpdateStatus(ctx context.Context, id int64, status sec.AccountStatus) error

	// Delete removes an account. Postgres sessions cascade.
	Delete(ctx context.Context, id int64) error
}

// SessionTerminator ends every session of an account. Implemented by [auth.SessionRegistry].
type SessionTerminator interface {
	SupersedeAll(ctx context.Context, accountID int64) error
}

// PasswordResetter applies the password policy and rotates a password on an
// administrator's behalf. Implemented by [auth.Service].
type PasswordResetter interface {
	CheckPassword(password string) error
	ResetPassword(ctx context.Context, accountID int64, next string) error
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldStatus   = "status"
	FieldQuery    = "q"
	FieldID       = "accountID"
)

// SearchLimit caps the number of rows returned by a free-text search.
const SearchLimit = 50
