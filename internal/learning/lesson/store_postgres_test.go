// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package lesson_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/lesson"
)

func TestPostgresRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "course_id", "title", "description", "video_url", "is_preview", "order_index", "duration_seconds", "created_at"}

	mock.ExpectQuery(`FROM lessons WHERE course_id = \$1 ORDER BY order_index ASC, id ASC`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(1), int64(10), "Intro", "", "https://v/1", true, 0, 300, created).
			AddRow(int64(2), int64(10), "Deep dive", "", "https://v/2", false, 1, 900, created))

	mock.ExpectQuery(`FROM lessons WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	repository := lesson.NewPostgresRepository(mock)

	lessons, err := repository.ListByCourse(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.True(t, lessons[0].IsPreview)
	assert.Equal(t, 900, lessons[1].DurationSeconds)

	_, err = repository.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, lesson.ErrLessonNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_QueryFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM lessons WHERE course_id = \$1`).
		WithArgs(int64(10)).
		WillReturnError(errors.New("connection reset"))

	_, err = lesson.NewPostgresRepository(mock).ListByCourse(context.Background(), 10)

	assert.ErrorContains(t, err, "postgres_lesson_repo_list_failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
