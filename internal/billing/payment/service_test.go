// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package payment_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/billing/payment"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/enrollment"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/constants"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// memRepository keeps payments in a map and mimics the pending-only transition.
type memRepository struct {
	payments  map[int64]*payment.Payment
	nextID    int64
	createErr error
	enrolled  []*enrollment.Enrollment
}

func newMemRepository() *memRepository {
	return &memRepository{payments: map[int64]*payment.Payment{}, nextID: 1}
}

func (m *memRepository) Create(_ context.Context, p *payment.Payment) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = m.nextID
	p.Status = payment.StatusPending
	p.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.nextID++
	clone := *p
	m.payments[p.ID] = &clone
	return nil
}

func (m *memRepository) FindByID(_ context.Context, id int64) (*payment.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, payment.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memRepository) ListByAccount(_ context.Context, accountID int64) ([]*payment.Payment, error) {
	out := []*payment.Payment{}
	for _, p := range m.payments {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepository) ListPending(_ context.Context) ([]*payment.Payment, error) {
	out := []*payment.Payment{}
	for _, p := range m.payments {
		if p.Status == payment.StatusPending {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepository) transition(id int64, to payment.Status) (*payment.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, payment.ErrPaymentNotFound
	}
	if p.Status != payment.StatusPending {
		return nil, apperr.Conflict("Payment is already " + string(p.Status))
	}
	p.Status = to
	clone := *p
	return &clone, nil
}

func (m *memRepository) Approve(_ context.Context, id int64) (*payment.Payment, *enrollment.Enrollment, error) {
	p, err := m.transition(id, payment.StatusApproved)
	if err != nil {
		return nil, nil, err
	}
	e := &enrollment.Enrollment{ID: int64(len(m.enrolled) + 1), AccountID: p.AccountID, CourseID: p.CourseID, Status: enrollment.StatusActive}
	m.enrolled = append(m.enrolled, e)
	return p, e, nil
}

func (m *memRepository) Reject(_ context.Context, id int64) (*payment.Payment, error) {
	return m.transition(id, payment.StatusRejected)
}

func (m *memRepository) Delete(_ context.Context, id int64) (string, error) {
	p, ok := m.payments[id]
	if !ok {
		return "", payment.ErrPaymentNotFound
	}
	delete(m.payments, id)
	return p.ScreenshotKey, nil
}

// memProofs records uploads and deletions.
type memProofs struct {
	objects   map[string][]byte
	deleted   []string
	putErr    error
	deleteErr error
}

func newMemProofs() *memProofs {
	return &memProofs{objects: map[string][]byte{}}
}

func (m *memProofs) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (m *memProofs) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	return nil
}

func validInput() payment.SubmitInput {
	return payment.SubmitInput{
		CourseID:    5,
		Amount:      250,
		Method:      payment.MethodVodafoneCash,
		ContentType: "image/png",
		Proof:       bytes.NewReader(pngHeader),
		ProofSize:   int64(len(pngHeader)),
	}
}

var reviewer = &sec.Identity{ID: 1, Role: sec.RoleAdmin}

/*
TestSubmit covers the upload-then-record flow.

Steps:
 1. A valid claim stores the screenshot under the account prefix.
 2. Invalid claims are rejected before anything is uploaded.
 3. A failed insert removes the uploaded screenshot again.
*/
func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, proofs := newMemRepository(), newMemProofs()
		service := payment.NewService(repo, proofs)

		got, err := service.Submit(ctx, 7, validInput())

		require.NoError(t, err)
		assert.Equal(t, payment.StatusPending, got.Status)
		assert.True(t, strings.HasPrefix(got.ScreenshotKey, constants.ProofKeyPrefix+"/7/"), got.ScreenshotKey)
		assert.True(t, strings.HasSuffix(got.ScreenshotKey, ".png"))
		assert.Equal(t, "https://cdn.example.com/"+got.ScreenshotKey, got.ScreenshotURL)
		assert.Contains(t, proofs.objects, got.ScreenshotKey)
		assert.Len(t, repo.payments, 1)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*payment.SubmitInput)
		}{
			{"missing_course", func(in *payment.SubmitInput) { in.CourseID = 0 }},
			{"zero_amount", func(in *payment.SubmitInput) { in.Amount = 0 }},
			{"negative_amount", func(in *payment.SubmitInput) { in.Amount = -10 }},
			{"unknown_method", func(in *payment.SubmitInput) { in.Method = "paypal" }},
			{"missing_proof", func(in *payment.SubmitInput) { in.Proof, in.ProofSize = nil, 0 }},
			{"oversized_proof", func(in *payment.SubmitInput) { in.ProofSize = constants.MaxProofUploadBytes + 1 }},
			{"not_an_image", func(in *payment.SubmitInput) { in.ContentType = "application/pdf" }},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				proofs := newMemProofs()
				service := payment.NewService(newMemRepository(), proofs)
				input := validInput()
				tc.mutate(&input)

				_, err := service.Submit(ctx, 7, input)

				assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
				assert.Empty(t, proofs.objects)
			})
		}
	})

	t.Run("storage_disabled", func(t *testing.T) {
		service := payment.NewService(newMemRepository(), nil)

		_, err := service.Submit(ctx, 7, validInput())

		assert.True(t, apperr.HasCode(err, apperr.CodeUnavailable), "got %v", err)
	})

	t.Run("upload_failure", func(t *testing.T) {
		repo, proofs := newMemRepository(), newMemProofs()
		proofs.putErr = errors.New("bucket unreachable")
		service := payment.NewService(repo, proofs)

		_, err := service.Submit(ctx, 7, validInput())

		assert.True(t, apperr.HasCode(err, apperr.CodeInternal), "got %v", err)
		assert.Empty(t, repo.payments)
	})

	t.Run("insert_failure_discards_upload", func(t *testing.T) {
		repo, proofs := newMemRepository(), newMemProofs()
		repo.createErr = payment.ErrCourseNotFound
		service := payment.NewService(repo, proofs)

		_, err := service.Submit(ctx, 7, validInput())

		assert.ErrorIs(t, err, payment.ErrCourseNotFound)
		assert.Len(t, proofs.deleted, 1)
		assert.Empty(t, proofs.objects)
	})
}

/*
TestReview covers approval and rejection.

Steps:
 1. Approval activates the enrollment and discards the screenshot.
 2. A second review of the same payment conflicts.
 3. Rejection never enrolls.
 4. Screenshot cleanup failures do not fail the review.
*/
func TestReview(t *testing.T) {
	ctx := context.Background()

	submit := func(t *testing.T, service *payment.Service) *payment.Payment {
		t.Helper()
		p, err := service.Submit(ctx, 7, validInput())
		require.NoError(t, err)
		return p
	}

	t.Run("approve", func(t *testing.T) {
		repo, proofs := newMemRepository(), newMemProofs()
		service := payment.NewService(repo, proofs)
		submitted := submit(t, service)

		approved, err := service.Approve(ctx, reviewer, submitted.ID)

		require.NoError(t, err)
		assert.Equal(t, payment.StatusApproved, approved.Status)
		require.Len(t, repo.enrolled, 1)
		assert.Equal(t, int64(7), repo.enrolled[0].AccountID)
		assert.Equal(t, int64(5), repo.enrolled[0].CourseID)
		assert.Equal(t, []string{submitted.ScreenshotKey}, proofs.deleted)

		_, err = service.Approve(ctx, reviewer, submitted.ID)
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict), "got %v", err)
		_, err = service.Reject(ctx, reviewer, submitted.ID)
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict), "got %v", err)
		assert.Len(t, proofs.deleted, 1)
	})

	t.Run("reject", func(t *testing.T) {
		repo, proofs := newMemRepository(), newMemProofs()
		service := payment.NewService(repo, proofs)
		submitted := submit(t, service)

		rejected, err := service.Reject(ctx, reviewer, submitted.ID)

		require.NoError(t, err)
		assert.Equal(t, payment.StatusRejected, rejected.Status)
		assert.Empty(t, repo.enrolled)
	})

	t.Run("unknown_payment", func(t *testing.T) {
		service := payment.NewService(newMemRepository(), newMemProofs())

		_, err := service.Approve(ctx, reviewer, 404)

		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})

	t.Run("cleanup_failure_is_ignored", func(t *testing.T) {
		repo, proofs := newMemRepository(), newMemProofs()
		service := payment.NewService(repo, proofs)
		submitted := submit(t, service)
		proofs.deleteErr = errors.New("access denied")

		approved, err := service.Approve(ctx, reviewer, submitted.ID)

		require.NoError(t, err)
		assert.Equal(t, payment.StatusApproved, approved.Status)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo, proofs := newMemRepository(), newMemProofs()
	service := payment.NewService(repo, proofs)

	submitted, err := service.Submit(ctx, 7, validInput())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, reviewer, submitted.ID))
	assert.Empty(t, repo.payments)
	assert.Equal(t, []string{submitted.ScreenshotKey}, proofs.deleted)

	err = service.Delete(ctx, reviewer, submitted.ID)
	assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
}

func TestListPending(t *testing.T) {
	ctx := context.Background()
	repo, proofs := newMemRepository(), newMemProofs()
	service := payment.NewService(repo, proofs)

	first, err := service.Submit(ctx, 7, validInput())
	require.NoError(t, err)
	_, err = service.Submit(ctx, 8, validInput())
	require.NoError(t, err)
	_, err = service.Reject(ctx, reviewer, first.ID)
	require.NoError(t, err)

	pending, err := service.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(8), pending[0].AccountID)

	mine, err := service.ListMine(ctx, 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, payment.StatusRejected, mine[0].Status)
}
