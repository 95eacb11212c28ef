// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package lesson serves course lessons and decides who may watch them.

# Access Rules

Administrators see everything. Preview lessons are open to everyone, anonymous
visitors included. Every other lesson requires an active enrollment in its course.
*/
package lesson

import (
	"context"
	"time"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
)

// # Domain Entities

// Lesson is one video of a course.
type Lesson struct {
	ID              int64     `json:"lesson_id"`
	CourseID        int64     `json:"course_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"video_url,omitempty"`
	IsPreview       bool      `json:"is_preview"`
	OrderIndex      int       `json:"order_index"`
	DurationSeconds int       `json:"duration"`
	CreatedAt       time.Time `json:"created_at"`
}

// View is a lesson as listed to a particular caller.
//
// VideoURL is blanked when Accessible is false.
type View struct {
	Lesson
	Accessible bool `json:"is_accessible"`
}

// ErrLessonNotFound is returned when no lesson has the requested ID.
var ErrLessonNotFound = apperr.NotFound("Lesson")

// # Contracts

// Repository reads lessons.
type Repository interface {
	// FindByID returns the lesson or ErrLessonNotFound.
	FindByID(ctx context.Context, id int64) (*Lesson, error)

	// ListByCourse returns the lessons of a course in display order.
	ListByCourse(ctx context.Context, courseID int64) ([]*Lesson, error)
}

// EnrollmentLookup answers whether an account may watch a course's paid lessons.
type EnrollmentLookup interface {
	FindActive(ctx context.Context, accountID, courseID int64) (bool, error)
}
