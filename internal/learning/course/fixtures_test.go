// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package course_test

import (
	"context"
	"strings"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/course"
)

// memCourses filters in memory the way the SQL query does.
type memCourses struct {
	courses []*course.Course
	err     error
}

func (m *memCourses) FindByID(_ context.Context, id int64) (*course.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, course.ErrCourseNotFound
}

func (m *memCourses) List(_ context.Context, filter course.Filter) ([]*course.Course, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}

	matched := make([]*course.Course, 0)
	for _, c := range m.courses {
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.MinPrice != nil && c.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && c.Price > *filter.MaxPrice {
			continue
		}
		matched = append(matched, c)
	}

	start := min(filter.Offset(), len(matched))
	end := min(start+filter.Limit, len(matched))
	return matched[start:end], len(matched), nil
}

func catalogue() *memCourses {
	return &memCourses{courses: []*course.Course{
		{ID: 1, Title: "Go Basics", Price: 0},
		{ID: 2, Title: "Go Concurrency", Price: 49.5},
		{ID: 3, Title: "SQL for Backends", Price: 99},
	}}
}
