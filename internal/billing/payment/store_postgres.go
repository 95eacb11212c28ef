// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package payment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/enrollment"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/dberr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/postgres"
)

const (
	insertPaymentQuery = `
		INSERT INTO payments (user_id, course_id, amount, method, screenshot_key, screenshot_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at`

	selectPayment = `
		SELECT p.id, p.user_id, p.course_id, p.amount, p.method, p.screenshot_key, p.screenshot_url,
		       p.status, p.created_at, p.reviewed_at, c.title, u.name, u.email
		FROM payments p
		JOIN courses c ON c.id = p.course_id
		JOIN users u ON u.id = p.user_id`

	findPaymentQuery   = selectPayment + ` WHERE p.id = $1`
	listByAccountQuery = selectPayment + ` WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id DESC`
	listPendingQuery   = selectPayment + ` WHERE p.status = 'pending' ORDER BY p.created_at ASC, p.id ASC`
	paymentStatusQuery = `SELECT status FROM payments WHERE id = $1`
	deletePaymentQuery = `DELETE FROM payments WHERE id = $1 RETURNING screenshot_key`

	transitionQuery = `
		UPDATE payments SET status = $2, reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, user_id, course_id, amount, method, screenshot_key, screenshot_url, status, created_at, reviewed_at`
)

// Postgres default names for the payments foreign keys.
const (
	courseForeignKey  = "payments_course_id_fkey"
	accountForeignKey = "payments_user_id_fkey"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository constructs a payment repository.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner, joined bool) (*Payment, error) {
	var (
		payment        Payment
		method, status string
	)

	dest := []any{
		&payment.ID,
		&payment.AccountID,
		&payment.CourseID,
		&payment.Amount,
		&method,
		&payment.ScreenshotKey,
		&payment.ScreenshotURL,
		&status,
		&payment.CreatedAt,
		&payment.ReviewedAt,
	}
	if joined {
		dest = append(dest, &payment.CourseTitle, &payment.AccountName, &payment.AccountEmail)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	payment.Method = Method(method)
	payment.Status = Status(status)
	return &payment, nil
}

// Create stores a new pending payment.
func (repository *PostgresRepository) Create(ctx context.Context, payment *Payment) error {
	var status string

	err := repository.db.QueryRow(ctx, insertPaymentQuery,
		payment.AccountID,
		payment.CourseID,
		payment.Amount,
		string(payment.Method),
		payment.ScreenshotKey,
		payment.ScreenshotURL,
	).Scan(&payment.ID, &status, &payment.CreatedAt)
	if err != nil {
		switch dberr.ViolatedForeignKey(err) {
		case courseForeignKey:
			return ErrCourseNotFound
		case accountForeignKey:
			return ErrAccountNotFound
		}
		return fmt.Errorf("postgres_payment_repo_create_failed: %w", err)
	}

	payment.Status = Status(status)
	return nil
}

// FindByID retrieves one payment with its course and student labels.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Payment, error) {
	payment, err := scanPayment(repository.db.QueryRow(ctx, findPaymentQuery, id), true)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("postgres_payment_repo_find_failed: %w", err)
	}
	return payment, nil
}

// ListByAccount retrieves the payments of one student.
func (repository *PostgresRepository) ListByAccount(ctx context.Context, accountID int64) ([]*Payment, error) {
	return repository.list(ctx, listByAccountQuery, accountID)
}

// ListPending retrieves the review queue.
func (repository *PostgresRepository) ListPending(ctx context.Context) ([]*Payment, error) {
	return repository.list(ctx, listPendingQuery)
}

func (repository *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*Payment, error) {
	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_payment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	payments := make([]*Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows, true)
		if err != nil {
			return nil, fmt.Errorf("postgres_payment_repo_scan_failed: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_payment_repo_rows_failed: %w", err)
	}

	return payments, nil
}

/*
Approve moves a pending payment to approved and activates the enrollment.

Both writes share one transaction so a payment is never approved without access.
*/
func (repository *PostgresRepository) Approve(ctx context.Context, id int64) (*Payment, *enrollment.Enrollment, error) {
	var (
		payment  *Payment
		enrolled *enrollment.Enrollment
	)

	err := postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		var err error

		payment, err = transition(ctx, tx, id, StatusApproved)
		if err != nil {
			return err
		}

		enrolled, err = enrollment.NewPostgresStore(tx).Activate(ctx, payment.AccountID, payment.CourseID, payment.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return payment, enrolled, nil
}

// Reject moves a pending payment to rejected.
func (repository *PostgresRepository) Reject(ctx context.Context, id int64) (*Payment, error) {
	return transition(ctx, repository.db, id, StatusRejected)
}

// Delete removes a payment. Enrollments it activated keep their access.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) (string, error) {
	var key string
	if err := repository.db.QueryRow(ctx, deletePaymentQuery, id).Scan(&key); err != nil {
		if dberr.IsNoRows(err) {
			return "", ErrPaymentNotFound
		}
		return "", fmt.Errorf("postgres_payment_repo_delete_failed: %w", err)
	}
	return key, nil
}

// transition applies a review decision, refusing anything but pending payments.
func transition(ctx context.Context, db postgres.Querier, id int64, to Status) (*Payment, error) {
	payment, err := scanPayment(db.QueryRow(ctx, transitionQuery, id, string(to)), false)
	if err == nil {
		return payment, nil
	}
	if !dberr.IsNoRows(err) {
		return nil, fmt.Errorf("postgres_payment_repo_transition_failed: %w", err)
	}

	var current string
	if err := db.QueryRow(ctx, paymentStatusQuery, id).Scan(&current); err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("postgres_payment_repo_status_failed: %w", err)
	}

	return nil, apperr.Conflict(fmt.Sprintf("Payment is already %s", current))
}
