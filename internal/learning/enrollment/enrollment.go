// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

// Package enrollment records which students may watch which courses.
//
// An enrollment becomes active when an administrator approves the student's
// payment for the course.
package enrollment

import "time"

// Status is the lifecycle state of an enrollment.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Enrollment links one account to one course.
type Enrollment struct {
	ID         int64     `json:"enrollment_id"`
	AccountID  int64     `json:"user_id"`
	CourseID   int64     `json:"course_id"`
	PaymentID  *int64    `json:"payment_id,omitempty"`
	Status     Status    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
