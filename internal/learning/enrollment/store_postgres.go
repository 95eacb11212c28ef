// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package enrollment

import (
	"context"
	"fmt"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/postgres"
)

const (
	findActiveQuery = `
		SELECT EXISTS (
			SELECT 1 FROM enrollments
			WHERE user_id = $1 AND course_id = $2 AND status = 'active'
		)`

	// Re-approving a course reactivates the existing row instead of failing the unique key.
	activateQuery = `
		INSERT INTO enrollments (user_id, course_id, payment_id, status)
		VALUES ($1, $2, $3, 'active')
		ON CONFLICT (user_id, course_id)
		DO UPDATE SET status = 'active', payment_id = EXCLUDED.payment_id, enrolled_at = NOW()
		RETURNING id, enrolled_at`

	listForAccountQuery = `
		SELECT id, user_id, course_id, payment_id, status, enrolled_at
		FROM enrollments
		WHERE user_id = $1 AND status = 'active'
		ORDER BY enrolled_at DESC`
)

// PostgresStore implements enrollment persistence with pgx.
//
// It accepts a [postgres.Querier] so it can run inside a payment approval transaction.
type PostgresStore struct {
	db postgres.Querier
}

// NewPostgresStore wraps a pool or a transaction.
func NewPostgresStore(db postgres.Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindActive reports whether the account holds an active enrollment in the course.
func (store *PostgresStore) FindActive(ctx context.Context, accountID, courseID int64) (bool, error) {
	var exists bool
	if err := store.db.QueryRow(ctx, findActiveQuery, accountID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_enrollment_store_find_active_failed: %w", err)
	}
	return exists, nil
}

/*
Activate creates or reactivates the enrollment of an account in a course.

Returns:
  - *Enrollment: The active enrollment
  - error: Storage failures
*/
func (store *PostgresStore) Activate(ctx context.Context, accountID, courseID, paymentID int64) (*Enrollment, error) {
	enrollment := &Enrollment{
		AccountID: accountID,
		CourseID:  courseID,
		PaymentID: &paymentID,
		Status:    StatusActive,
	}

	err := store.db.QueryRow(ctx, activateQuery, accountID, courseID, paymentID).
		Scan(&enrollment.ID, &enrollment.EnrolledAt)
	if err != nil {
		return nil, fmt.Errorf("postgres_enrollment_store_activate_failed: %w", err)
	}

	return enrollment, nil
}

// ListForAccount returns the active enrollments of an account, newest first.
func (store *PostgresStore) ListForAccount(ctx context.Context, accountID int64) ([]*Enrollment, error) {
	rows, err := store.db.Query(ctx, listForAccountQuery, accountID)
	if err != nil {
		return nil, fmt.Errorf("postgres_enrollment_store_list_failed: %w", err)
	}
	defer rows.Close()

	var enrollments []*Enrollment
	for rows.Next() {
		var (
			enrollment Enrollment
			status     string
		)
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.AccountID,
			&enrollment.CourseID,
			&enrollment.PaymentID,
			&status,
			&enrollment.EnrolledAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_enrollment_store_scan_failed: %w", err)
		}
		enrollment.Status = Status(status)
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_enrollment_store_rows_failed: %w", err)
	}

	return enrollments, nil
}
