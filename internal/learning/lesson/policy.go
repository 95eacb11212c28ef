// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package lesson

import (
	"context"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
)

// AccessPolicy decides whether an identity may watch a lesson.
type AccessPolicy struct {
	lessons     Repository
	enrollments EnrollmentLookup
}

// NewAccessPolicy wires the policy to its lookups.
func NewAccessPolicy(lessons Repository, enrollments EnrollmentLookup) *AccessPolicy {
	return &AccessPolicy{lessons: lessons, enrollments: enrollments}
}

/*
Authorize returns the lesson if identity may watch it.

# Order
 1. Unknown lesson: NotFound, for everyone.
 2. Admin: allowed.
 3. Preview lesson: allowed, anonymous included.
 4. Anonymous: Unauthorized.
 5. Active enrollment in the lesson's course: allowed, otherwise EnrollmentRequired.

A nil identity means an anonymous caller.
*/
func (policy *AccessPolicy) Authorize(ctx context.Context, identity *sec.Identity, lessonID int64) (*Lesson, error) {
	lesson, err := policy.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if identity.IsAdmin() || lesson.IsPreview {
		return lesson, nil
	}

	if identity == nil {
		return nil, apperr.Unauthorized("Log in to watch this lesson")
	}

	enrolled, err := policy.enrollments.FindActive(ctx, identity.ID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperr.EnrollmentRequired()
	}

	return lesson, nil
}

/*
ListForCourse returns every lesson of a course with the caller's access flag.

The enrollment is looked up once for the whole course. Video URLs of lessons the
caller cannot watch are removed.
*/
func (policy *AccessPolicy) ListForCourse(ctx context.Context, identity *sec.Identity, courseID int64) ([]View, error) {
	lessons, err := policy.lessons.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	unlocked := identity.IsAdmin()
	if !unlocked && identity != nil && len(lessons) > 0 {
		unlocked, err = policy.enrollments.FindActive(ctx, identity.ID, courseID)
		if err != nil {
			return nil, err
		}
	}

	views := make([]View, 0, len(lessons))
	for _, lesson := range lessons {
		view := View{Lesson: *lesson, Accessible: unlocked || lesson.IsPreview}
		if !view.Accessible {
			view.VideoURL = ""
		}
		views = append(views, view)
	}

	return views, nil
}
