// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package course

import (
	"context"
	"fmt"
	"strings"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/database/schema"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/dberr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/postgres"
)

var (
	coursesT = schema.Course
	lessonsT = schema.Lesson
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository constructs a course repository.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// projection selects the course columns followed by its lesson count.
func projection() string {
	columns := make([]string, 0, len(coursesT.Columns()))
	for _, column := range coursesT.Columns() {
		columns = append(columns, "c."+column)
	}
	return fmt.Sprintf(`%s, (SELECT COUNT(*) FROM %s l WHERE l.%s = c.%s)`,
		strings.Join(columns, ", "), lessonsT.Table, lessonsT.CourseID, coursesT.ID)
}

func scanCourse(row rowScanner, extra ...any) (*Course, error) {
	var course Course
	dest := append([]any{
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.ThumbnailURL,
		&course.CreatedAt,
		&course.LessonCount,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByID retrieves one course with its lesson count.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s c WHERE c.%s = $1`, projection(), coursesT.Table, coursesT.ID)

	course, err := scanCourse(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("postgres_course_repo_find_failed: %w", err)
	}
	return course, nil
}

/*
List returns one page of the catalogue, newest first.

Description: A non-empty Search matches the title as a literal substring. The
total is computed by a window function in the same round trip.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter) ([]*Course, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER()
		FROM %s c
		WHERE ($1 = '' OR c.%s ILIKE $1)
		  AND ($2::numeric IS NULL OR c.%s >= $2)
		  AND ($3::numeric IS NULL OR c.%s <= $3)
		ORDER BY c.%s DESC, c.%s DESC
		LIMIT $4 OFFSET $5`,
		projection(),
		coursesT.Table,
		coursesT.Title,
		coursesT.Price,
		coursesT.Price,
		coursesT.CreatedAt, coursesT.ID,
	)

	rows, err := repository.db.Query(ctx, query,
		filter.SearchPattern(), filter.MinPrice, filter.MaxPrice, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_course_repo_list_failed: %w", err)
	}
	defer rows.Close()

	courses := make([]*Course, 0, filter.Limit)
	total := 0

	for rows.Next() {
		course, err := scanCourse(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_course_repo_scan_failed: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_course_repo_rows_failed: %w", err)
	}

	return courses, total, nil
}
