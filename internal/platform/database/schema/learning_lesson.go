// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package schema

// LessonTable represents the 'lessons' table
type LessonTable struct {
	Table           string
	ID              string
	CourseID        string
	Title           string
	Description     string
	VideoURL        string
	IsPreview       string
	OrderIndex      string
	DurationSeconds string
	CreatedAt       string
}

// Lesson is the schema definition for lessons
var Lesson = LessonTable{
	Table:           "lessons",
	ID:              "id",
	CourseID:        "course_id",
	Title:           "title",
	Description:     "description",
	VideoURL:        "video_url",
	IsPreview:       "is_preview",
	OrderIndex:      "order_index",
	DurationSeconds: "duration_seconds",
	CreatedAt:       "created_at",
}

// Columns returns every column in scan order.
func (t LessonTable) Columns() []string {
	return []string{t.ID, t.CourseID, t.Title, t.Description, t.VideoURL, t.IsPreview, t.OrderIndex, t.DurationSeconds, t.CreatedAt}
}
