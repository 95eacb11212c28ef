// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package lesson_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/lesson"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
)

type memLessons map[int64]*lesson.Lesson

func (m memLessons) FindByID(_ context.Context, id int64) (*lesson.Lesson, error) {
	l, ok := m[id]
	if !ok {
		return nil, lesson.ErrLessonNotFound
	}
	clone := *l
	return &clone, nil
}

func (m memLessons) ListByCourse(_ context.Context, courseID int64) ([]*lesson.Lesson, error) {
	var out []*lesson.Lesson
	for id := int64(1); id <= int64(len(m)); id++ {
		if l, ok := m[id]; ok && l.CourseID == courseID {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, nil
}

// enrollmentSet maps account ID to the courses it is enrolled in.
type enrollmentSet struct {
	active map[int64][]int64
	err    error
	calls  int
}

func (e *enrollmentSet) FindActive(_ context.Context, accountID, courseID int64) (bool, error) {
	e.calls++
	if e.err != nil {
		return false, e.err
	}
	for _, id := range e.active[accountID] {
		if id == courseID {
			return true, nil
		}
	}
	return false, nil
}

func fixtures() (memLessons, *enrollmentSet) {
	lessons := memLessons{
		1: {ID: 1, CourseID: 10, Title: "Intro", VideoURL: "https://v/1", IsPreview: true},
		2: {ID: 2, CourseID: 10, Title: "Deep dive", VideoURL: "https://v/2"},
		3: {ID: 3, CourseID: 20, Title: "Other course", VideoURL: "https://v/3"},
	}
	enrollments := &enrollmentSet{active: map[int64][]int64{
		5: {10},
	}}
	return lessons, enrollments
}

var (
	admin    = &sec.Identity{ID: 1, Role: sec.RoleAdmin}
	enrolled = &sec.Identity{ID: 5, Role: sec.RoleStudent}
	stranger = &sec.Identity{ID: 6, Role: sec.RoleStudent}
)

/*
TestAuthorize walks the decision order of the access predicate.
*/
func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		identity *sec.Identity
		lessonID int64
		wantCode string
	}{
		{"missing_lesson_for_admin", admin, 99, apperr.CodeNotFound},
		{"missing_lesson_for_anonymous", nil, 99, apperr.CodeNotFound},
		{"admin_paid_lesson_without_enrollment", admin, 2, ""},
		{"anonymous_preview", nil, 1, ""},
		{"anonymous_paid", nil, 2, apperr.CodeUnauthorized},
		{"enrolled_student", enrolled, 2, ""},
		{"enrolled_elsewhere", enrolled, 3, apperr.CodeEnrollmentRequired},
		{"student_without_enrollment", stranger, 2, apperr.CodeEnrollmentRequired},
		{"student_preview", stranger, 1, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lessons, enrollments := fixtures()
			policy := lesson.NewAccessPolicy(lessons, enrollments)

			got, err := policy.Authorize(context.Background(), tc.identity, tc.lessonID)

			if tc.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.lessonID, got.ID)
				return
			}
			assert.True(t, apperr.HasCode(err, tc.wantCode), "got %v", err)
		})
	}
}

func TestAuthorize_LookupFailure(t *testing.T) {
	lessons, enrollments := fixtures()
	enrollments.err = errors.New("db down")
	policy := lesson.NewAccessPolicy(lessons, enrollments)

	_, err := policy.Authorize(context.Background(), stranger, 2)

	assert.ErrorContains(t, err, "db down")
}

/*
TestListForCourse checks the per-caller access flag and URL stripping.
*/
func TestListForCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous_sees_previews_only", func(t *testing.T) {
		lessons, enrollments := fixtures()
		policy := lesson.NewAccessPolicy(lessons, enrollments)

		views, err := policy.ListForCourse(ctx, nil, 10)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.True(t, views[0].Accessible)
		assert.Equal(t, "https://v/1", views[0].VideoURL)
		assert.False(t, views[1].Accessible)
		assert.Empty(t, views[1].VideoURL)
		assert.Zero(t, enrollments.calls)
	})

	t.Run("enrolled_sees_everything_with_one_lookup", func(t *testing.T) {
		lessons, enrollments := fixtures()
		policy := lesson.NewAccessPolicy(lessons, enrollments)

		views, err := policy.ListForCourse(ctx, enrolled, 10)

		require.NoError(t, err)
		for _, view := range views {
			assert.True(t, view.Accessible)
			assert.NotEmpty(t, view.VideoURL)
		}
		assert.Equal(t, 1, enrollments.calls)
	})

	t.Run("admin_skips_lookup", func(t *testing.T) {
		lessons, enrollments := fixtures()
		policy := lesson.NewAccessPolicy(lessons, enrollments)

		views, err := policy.ListForCourse(ctx, admin, 20)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.True(t, views[0].Accessible)
		assert.Zero(t, enrollments.calls)
	})
}
