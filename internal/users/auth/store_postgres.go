// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/database/schema"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/dberr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/postgres"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
)

var (
	accountT = schema.UserAccount
	sessionT = schema.UserSession

	selectAccount = fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(accountT.Columns(), ", "), accountT.Table)
)

// # Account Repository

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	db postgres.DB
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(db postgres.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

/*
Create persists a new account and hydrates its generated ID and creation time.

Returns:
  - error: apperr.DuplicateEmail when the email is already taken, storage errors otherwise
*/
func (repository *PostgresAccountRepository) Create(ctx context.Context, account *Account) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5) RETURNING %s, %s`,
		accountT.Table,
		accountT.Name, accountT.Email, accountT.Password, accountT.Role, accountT.Status,
		accountT.ID, accountT.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		string(account.Role),
		string(account.Status),
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.DuplicateEmail()
		}
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

// FindByEmail retrieves an account by its exact email.
func (repository *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := selectAccount + fmt.Sprintf(` WHERE %s = $1`, accountT.Email)
	return repository.findOne(ctx, query, email)
}

// FindByID retrieves an account by primary key.
func (repository *PostgresAccountRepository) FindByID(ctx context.Context, id int64) (*Account, error) {
	query := selectAccount + fmt.Sprintf(` WHERE %s = $1`, accountT.ID)
	return repository.findOne(ctx, query, id)
}

func (repository *PostgresAccountRepository) findOne(ctx context.Context, query string, arg any) (*Account, error) {
	var (
		account      Account
		role, status string
	)

	err := repository.db.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&role,
		&status,
		&account.CreatedAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("postgres_account_repo_find_failed: %w", err)
	}

	account.Role = sec.UserRole(role)
	account.Status = sec.AccountStatus(status)

	return &account, nil
}

// UpdatePassword replaces the stored hash.
func (repository *PostgresAccountRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, accountT.Table, accountT.Password, accountT.ID)

	tag, err := repository.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// # Session Store

// PostgresSessionStore implements [SessionStore] on the active_sessions table.
//
// Sessions cascade away with their account through the foreign key.
type PostgresSessionStore struct {
	db postgres.DB
}

// NewPostgresSessionStore creates a new PostgreSQL session store.
func NewPostgresSessionStore(db postgres.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

// Insert stores a new session row.
func (store *PostgresSessionStore) Insert(ctx context.Context, session *Session) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		sessionT.Table, sessionT.Token, sessionT.UserID, sessionT.LastSeen)

	if _, err := store.db.Exec(ctx, query, session.Token, session.AccountID, session.LastSeen); err != nil {
		return fmt.Errorf("postgres_session_store_insert_failed: %w", err)
	}

	return nil
}

// FindByToken looks a session up by its token.
func (store *PostgresSessionStore) FindByToken(ctx context.Context, token string) (*Session, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		sessionT.UserID, sessionT.LastSeen, sessionT.Table, sessionT.Token)

	session := &Session{Token: token}
	var lastSeen time.Time

	if err := store.db.QueryRow(ctx, query, token).Scan(&session.AccountID, &lastSeen); err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("postgres_session_store_find_failed: %w", err)
	}
	session.LastSeen = lastSeen

	return session, nil
}

// DeleteAllForAccount removes every session of one account.
func (store *PostgresSessionStore) DeleteAllForAccount(ctx context.Context, accountID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, sessionT.Table, sessionT.UserID)

	tag, err := store.db.Exec(ctx, query, accountID)
	if err != nil {
		return 0, fmt.Errorf("postgres_session_store_delete_all_failed: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteByToken removes one session, if present.
func (store *PostgresSessionStore) DeleteByToken(ctx context.Context, token string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, sessionT.Table, sessionT.Token)

	if _, err := store.db.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("postgres_session_store_delete_failed: %w", err)
	}

	return nil
}
