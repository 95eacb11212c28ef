// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package payment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/constants"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/ctxutil"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/validate"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/uuid"
)

// proofExtensions maps accepted screenshot types to the stored file extension.
var proofExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Service implements the payment use cases.
type Service struct {
	repository Repository
	proofs     ProofStore
}

// NewService constructs a new [Service]. A nil proof store disables submissions.
func NewService(repository Repository, proofs ProofStore) *Service {
	return &Service{repository: repository, proofs: proofs}
}

// SubmitInput is a student's payment claim with its receipt screenshot.
type SubmitInput struct {
	CourseID    int64
	Amount      float64
	Method      Method
	ContentType string
	Proof       io.Reader
	ProofSize   int64
}

/*
Submit uploads the receipt and records a pending payment.

The screenshot is removed again if the record cannot be stored.

Returns:
  - *Payment: The pending payment
  - error: ValidationError, NotFound (course), ServiceUnavailable (no storage) or failures
*/
func (service *Service) Submit(ctx context.Context, accountID int64, input SubmitInput) (*Payment, error) {
	if service.proofs == nil {
		return nil, apperr.ServiceUnavailable("Payment uploads are not configured")
	}

	ext, allowedType := proofExtensions[input.ContentType]

	validator := &validate.Validator{}
	validator.PositiveID(FieldCourseID, input.CourseID).
		Positive(FieldAmount, input.Amount).
		OneOf(FieldMethod, string(input.Method), string(MethodVodafoneCash), string(MethodInstapay)).
		Custom(FieldScreenshot, input.Proof == nil || input.ProofSize <= 0, "Receipt screenshot is required").
		MaxBytes(FieldScreenshot, input.ProofSize, constants.MaxProofUploadBytes).
		Custom(FieldScreenshot, input.Proof != nil && !allowedType, "Receipt must be a JPEG, PNG or WebP image")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	key := path.Join(constants.ProofKeyPrefix, fmt.Sprintf("%d", accountID), uuid.New()+ext)

	url, err := service.proofs.Put(ctx, key, input.ContentType, input.Proof, input.ProofSize)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	payment := &Payment{
		AccountID:     accountID,
		CourseID:      input.CourseID,
		Amount:        input.Amount,
		Method:        input.Method,
		ScreenshotKey: key,
		ScreenshotURL: url,
	}

	if err := service.repository.Create(ctx, payment); err != nil {
		service.discardProof(ctx, key)
		return nil, err
	}

	ctxutil.GetLogger(ctx).Info("payment_submitted",
		slog.Int64("payment_id", payment.ID),
		slog.Int64("user_id", accountID),
		slog.Int64("course_id", input.CourseID),
	)

	return payment, nil
}

// ListMine returns the caller's payments.
func (service *Service) ListMine(ctx context.Context, accountID int64) ([]*Payment, error) {
	return service.repository.ListByAccount(ctx, accountID)
}

// ListPending returns the review queue.
func (service *Service) ListPending(ctx context.Context) ([]*Payment, error) {
	return service.repository.ListPending(ctx)
}

// Get returns one payment.
func (service *Service) Get(ctx context.Context, paymentID int64) (*Payment, error) {
	return service.repository.FindByID(ctx, paymentID)
}

/*
Approve accepts a pending payment and unlocks the course for its student.

Returns:
  - *Payment: The approved payment
  - error: NotFound, Conflict (already reviewed) or storage failures
*/
func (service *Service) Approve(ctx context.Context, reviewer *sec.Identity, paymentID int64) (*Payment, error) {
	payment, enrolled, err := service.repository.Approve(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).Info("payment_approved",
		slog.Int64("payment_id", payment.ID),
		slog.Int64("user_id", payment.AccountID),
		slog.Int64("course_id", payment.CourseID),
		slog.Int64("enrollment_id", enrolled.ID),
		slog.Int64("reviewer_id", reviewerID(reviewer)),
	)

	service.discardProof(ctx, payment.ScreenshotKey)

	return payment, nil
}

// Reject declines a pending payment.
func (service *Service) Reject(ctx context.Context, reviewer *sec.Identity, paymentID int64) (*Payment, error) {
	payment, err := service.repository.Reject(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).Info("payment_rejected",
		slog.Int64("payment_id", payment.ID),
		slog.Int64("user_id", payment.AccountID),
		slog.Int64("reviewer_id", reviewerID(reviewer)),
	)

	service.discardProof(ctx, payment.ScreenshotKey)

	return payment, nil
}

// Delete removes a payment record and its screenshot.
func (service *Service) Delete(ctx context.Context, reviewer *sec.Identity, paymentID int64) error {
	key, err := service.repository.Delete(ctx, paymentID)
	if err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).Info("payment_deleted",
		slog.Int64("payment_id", paymentID),
		slog.Int64("reviewer_id", reviewerID(reviewer)),
	)

	service.discardProof(ctx, key)
	return nil
}

// discardProof deletes a screenshot. Failures are logged, never returned.
func (service *Service) discardProof(ctx context.Context, key string) {
	if service.proofs == nil || strings.TrimSpace(key) == "" {
		return
	}
	if err := service.proofs.Delete(ctx, key); err != nil {
		ctxutil.GetLogger(ctx).Warn("payment_proof_delete_failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func reviewerID(reviewer *sec.Identity) int64 {
	if reviewer == nil {
		return 0
	}
	return reviewer.ID
}
