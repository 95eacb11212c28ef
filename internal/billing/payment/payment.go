// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package payment implements manual course payments.

A student transfers the course price by Vodafone Cash or InstaPay and uploads a
screenshot of the receipt. An administrator reviews the pending payment; approval
activates the student's enrollment in the course in the same transaction.

# Lifecycle

	pending -> approved
	pending -> rejected

Reviewed payments never transition again.
*/
package payment

import (
	"context"
	"io"
	"time"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/enrollment"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
)

// # Enums

// Method is the transfer channel the student used.
type Method string

const (
	MethodVodafoneCash Method = "vodafone_cash"
	MethodInstapay     Method = "instapay"
)

// Status is the review state of a payment.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// # Domain Entities

// Payment is one submitted transfer awaiting or past review.
type Payment struct {
	ID            int64      `json:"payment_id"`
	AccountID     int64      `json:"user_id"`
	CourseID      int64      `json:"course_id"`
	Amount        float64    `json:"amount"`
	Method        Method     `json:"method"`
	ScreenshotKey string     `json:"-"`
	ScreenshotURL string     `json:"screenshot_url"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`

	// Joined for listings.
	CourseTitle  string `json:"course_title,omitempty"`
	AccountName  string `json:"user_name,omitempty"`
	AccountEmail string `json:"user_email,omitempty"`
}

// # Sentinel Errors

var (
	ErrPaymentNotFound = apperr.NotFound("Payment")
	ErrCourseNotFound  = apperr.NotFound("Course")
	ErrAccountNotFound = apperr.NotFound("Account")
)

// # Contracts

// Repository persists payments.
type Repository interface {
	// Create stores a pending payment and fills ID, Status and CreatedAt.
	Create(ctx context.Context, payment *Payment) error

	// FindByID returns a payment with its joined labels.
	FindByID(ctx context.Context, id int64) (*Payment, error)

	// ListByAccount returns the payments of one student, newest first.
	ListByAccount(ctx context.Context, accountID int64) ([]*Payment, error)

	// ListPending returns every payment awaiting review, oldest first.
	ListPending(ctx context.Context) ([]*Payment, error)

	// Approve marks a pending payment approved and activates the enrollment atomically.
	Approve(ctx context.Context, id int64) (*Payment, *enrollment.Enrollment, error)

	// Reject marks a pending payment rejected.
	Reject(ctx context.Context, id int64) (*Payment, error)

	// Delete removes a payment in any state and returns its screenshot key.
	Delete(ctx context.Context, id int64) (string, error)
}

// ProofStore keeps receipt screenshots. Implemented by storage.S3ObjectStore.
type ProofStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// # Field Identifiers

const (
	FieldCourseID   = "course_id"
	FieldAmount     = "amount"
	FieldMethod     = "method"
	FieldScreenshot = "screenshot"
	FieldPaymentID  = "paymentID"
)
