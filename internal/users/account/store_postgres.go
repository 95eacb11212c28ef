// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/database/schema"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/dberr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/postgres"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/auth"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

var usersT = schema.UserAccount

// # Implementation

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	db postgres.DB
}

// NewAccountRepository constructs a PostgreSQL-backed repository.
func NewAccountRepository(db postgres.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPublic(row rowScanner, extra ...any) (*auth.Account, error) {
	var (
		account      auth.Account
		role, status string
	)

	dest := append([]any{
		&account.ID,
		&account.Name,
		&account.Email,
		&role,
		&status,
		&account.CreatedAt,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	account.Role = sec.UserRole(role)
	account.Status = sec.AccountStatus(status)
	return &account, nil
}

/*
FindByID retrieves the public columns of an account.

Returns:
  - *auth.Account: Hydrated entity without password hash
  - error: auth.ErrAccountNotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(ctx context.Context, id int64) (*auth.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(usersT.PublicColumns(), ", "), usersT.Table, usersT.ID)

	account, err := scanPublic(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, fmt.Errorf("postgres_account_admin_repo_find_failed: %w", err)
	}

	return account, nil
}

// UpdateProfile writes name and email.
func (repository *PostgresAccountRepository) UpdateProfile(ctx context.Context, account *auth.Account) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		usersT.Table, usersT.Name, usersT.Email, usersT.ID)

	tag, err := repository.db.Exec(ctx, query, account.ID, account.Name, account.Email)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.DuplicateEmail()
		}
		return fmt.Errorf("postgres_account_admin_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrAccountNotFound
	}

	return nil
}

/*
ListStudents returns a page of students ordered by newest first.

Description: A non-empty params.Search matches name or email case-insensitively as a
literal substring.
The total is computed by a window function in the same round trip.
*/
func (repository *PostgresAccountRepository) ListStudents(ctx context.Context, params pagination.Params) ([]*auth.Account, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER()
		FROM %s
		WHERE %s = $1
		  AND ($2 = '' OR %s ILIKE $2 OR %s ILIKE $2)
		ORDER BY %s DESC, %s DESC
		LIMIT $3 OFFSET $4`,
		strings.Join(usersT.PublicColumns(), ", "),
		usersT.Table,
		usersT.Role,
		usersT.Name, usersT.Email,
		usersT.CreatedAt, usersT.ID,
	)

	rows, err := repository.db.Query(ctx, query,
		string(sec.RoleStudent), params.SearchPattern(), params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_admin_repo_list_failed: %w", err)
	}
	defer rows.Close()

	accounts := make([]*auth.Account, 0, params.Limit)
	total := 0

	for rows.Next() {
		account, err := scanPublic(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_account_admin_repo_scan_failed: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_admin_repo_rows_failed: %w", err)
	}

	return accounts, total, nil
}

// UpdateStatus changes the lifecycle status of an account.
func (repository *PostgresAccountRepository) UpdateStatus(ctx context.Context, id int64, status sec.AccountStatus) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, usersT.Table, usersT.Status, usersT.ID)

	tag, err := repository.db.Exec(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("postgres_account_admin_repo_status_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrAccountNotFound
	}

	return nil
}

// Delete removes the account row; sessions, enrollments and payments cascade.
func (repository *PostgresAccountRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, usersT.Table, usersT.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_admin_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrAccountNotFound
	}

	return nil
}
