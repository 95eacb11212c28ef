// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package course serves the public course catalogue.

Anyone may browse it. Listing supports a title search and a price range;
lessons of a course are served by the lesson package under the same prefix.
*/
package course

import (
	"context"
	"time"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

// Course is one purchasable course.
type Course struct {
	ID           int64     `json:"course_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ThumbnailURL string    `json:"thumbnail_url"`
	LessonCount  int       `json:"lessons_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Filter narrows a catalogue listing. Nil bounds are open.
type Filter struct {
	pagination.Params
	MinPrice *float64
	MaxPrice *float64
}

// ErrCourseNotFound is returned when no course has the requested ID.
var ErrCourseNotFound = apperr.NotFound("Course")

// Repository reads the catalogue.
type Repository interface {
	// FindByID returns the course or ErrCourseNotFound.
	FindByID(ctx context.Context, id int64) (*Course, error)

	// List returns one page of courses, newest first, and the total match count.
	List(ctx context.Context, filter Filter) ([]*Course, int, error)
}

const (
	FieldMinPrice = "min_price"
	FieldMaxPrice = "max_price"
	FieldCourseID = "courseID"
)
