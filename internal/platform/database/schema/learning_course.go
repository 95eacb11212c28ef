// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package schema

// CourseTable represents the 'courses' table
type CourseTable struct {
	Table        string
	ID           string
	Title        string
	Description  string
	Price        string
	ThumbnailURL string
	CreatedAt    string
}

// Course is the schema definition for courses
var Course = CourseTable{
	Table:        "courses",
	ID:           "id",
	Title:        "title",
	Description:  "description",
	Price:        "price",
	ThumbnailURL: "thumbnail_url",
	CreatedAt:    "created_at",
}

// Columns returns every column in scan order.
func (t CourseTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.Price, t.ThumbnailURL, t.CreatedAt}
}
