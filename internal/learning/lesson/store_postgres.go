// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package lesson

import (
	"context"
	"fmt"
	"strings"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/database/schema"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/dberr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/postgres"
)

var lessonsT = schema.Lesson

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a lesson repository.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLesson(row rowScanner) (*Lesson, error) {
	var lesson Lesson
	err := row.Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Description,
		&lesson.VideoURL,
		&lesson.IsPreview,
		&lesson.OrderIndex,
		&lesson.DurationSeconds,
		&lesson.CreatedAt,
	)
	return &lesson, err
}

// FindByID retrieves a single lesson.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Lesson, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(lessonsT.Columns(), ", "), lessonsT.Table, lessonsT.ID)

	lesson, err := scanLesson(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("postgres_lesson_repo_find_failed: %w", err)
	}
	return lesson, nil
}

// ListByCourse retrieves the lessons of a course ordered for display.
func (repository *PostgresRepository) ListByCourse(ctx context.Context, courseID int64) ([]*Lesson, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		strings.Join(lessonsT.Columns(), ", "), lessonsT.Table, lessonsT.CourseID,
		lessonsT.OrderIndex, lessonsT.ID)

	rows, err := repository.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("postgres_lesson_repo_list_failed: %w", err)
	}
	defer rows.Close()

	lessons := make([]*Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_lesson_repo_scan_failed: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_lesson_repo_rows_failed: %w", err)
	}

	return lessons, nil
}
