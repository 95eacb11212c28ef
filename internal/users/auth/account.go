// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package auth implements the session-bound identity core of Evolve Nova.

It handles registration, password hashing and policy, login with single-session
semantics, password rotation, logout, and the per-request access gate that turns
a signed cookie back into an authenticated identity.

# Architecture

  - Service: registration, login, password change, logout.
  - SessionRegistry: the single owner of session lifecycle (create, find, supersede, delete).
  - Gate: the per-request pipeline (decode, account, suspension, session).
  - Stores: Postgres for accounts; Postgres or Redis for sessions.
*/
package auth

import (
	"errors"
	"time"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
)

// # Domain Entities

// Account is a registered identity. The password hash never leaves this package
// in a serialized form.
type Account struct {
	ID           int64             `json:"user_id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"-"`
	Role         sec.UserRole      `json:"role"`
	Status       sec.AccountStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Identity returns the safe projection attached to authenticated requests.
func (account *Account) Identity() *sec.Identity {
	return &sec.Identity{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      account.Role,
		Status:    account.Status,
		CreatedAt: account.CreatedAt,
	}
}

// IsSuspended reports whether the account has been suspended by an administrator.
func (account *Account) IsSuspended() bool {
	return account.Status == sec.StatusSuspended
}

// Session is the server-side record of one live login.
type Session struct {
	Token     string
	AccountID int64
	LastSeen  time.Time
}

// # Sentinel Errors

var (
	// ErrAccountNotFound is returned by [AccountRepository] lookups that match nothing.
	ErrAccountNotFound = apperr.NotFound("Account")

	// ErrSessionNotFound is returned when a session token resolves to nothing.
	ErrSessionNotFound = errors.New("auth: session not found")
)

// # Field Identifiers

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldUser            = "user"
	FieldExpiresAt       = "expires_at"
	FieldMessage         = "message"
)
