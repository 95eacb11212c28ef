// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package payment

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/constants"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/middleware"
	requestutil "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/request"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/respond"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/validate"
)

// formOverheadBytes leaves room for the text fields next to the screenshot.
const formOverheadBytes = 64 << 10

// sniffLength is how many bytes http.DetectContentType inspects.
const sniffLength = 512

// Handler exposes the payment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new payment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes must be mounted behind RequireSession. Review endpoints add the admin role check.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.submit)
	router.Get("/mine", handler.listMine)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Get("/pending", handler.listPending)
		admin.Get("/{paymentID}", handler.get)
		admin.Put("/{paymentID}/approve", handler.approve)
		admin.Put("/{paymentID}/reject", handler.reject)
		admin.Delete("/{paymentID}", handler.delete)
	})

	return router
}

/*
POST /api/v1/payments.

Multipart form fields: course_id, amount, method and the screenshot file.

Response:
  - 201: Payment
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND (course)
  - 503: SERVICE_UNAVAILABLE when uploads are not configured
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxProofUploadBytes+formOverheadBytes)
	if err := request.ParseMultipartForm(constants.MaxProofUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, validate.Fail(FieldScreenshot, "Receipt screenshot is too large"))
			return
		}
		respond.Error(writer, request, apperr.ValidationError("Request must be a multipart form"))
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	input := SubmitInput{Method: Method(strings.TrimSpace(request.FormValue(FieldMethod)))}

	// Unparsable numbers fall through as zero and fail validation.
	input.CourseID, _ = strconv.ParseInt(strings.TrimSpace(request.FormValue(FieldCourseID)), 10, 64)
	input.Amount, _ = strconv.ParseFloat(strings.TrimSpace(request.FormValue(FieldAmount)), 64)

	file, header, err := request.FormFile(FieldScreenshot)
	if err == nil {
		defer file.Close()

		input.ContentType, err = sniffContentType(file)
		if err != nil {
			respond.Error(writer, request, apperr.Internal(err))
			return
		}
		input.Proof = file
		input.ProofSize = header.Size
	} else if !errors.Is(err, http.ErrMissingFile) {
		respond.Error(writer, request, apperr.ValidationError("Invalid screenshot upload"))
		return
	}

	payment, err := handler.service.Submit(request.Context(), identity.ID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, payment)
}

// sniffContentType detects the file type from its leading bytes and rewinds it.
func sniffContentType(file multipart.File) (string, error) {
	head := make([]byte, sniffLength)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

// GET /api/v1/payments/mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payments, err := handler.service.ListMine(request.Context(), identity.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, payments)
}

// GET /api/v1/payments/pending (admin).
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	payments, err := handler.service.ListPending(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, payments)
}

// GET /api/v1/payments/{paymentID} (admin).
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	paymentID, err := requestutil.Int64Param(request, FieldPaymentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payment, err := handler.service.Get(request.Context(), paymentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, payment)
}

/*
PUT /api/v1/payments/{paymentID}/approve (admin).

Response:
  - 200: Payment
  - 404: NOT_FOUND
  - 409: CONFLICT when the payment was already reviewed
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	handler.review(writer, request, handler.service.Approve)
}

// PUT /api/v1/payments/{paymentID}/reject (admin).
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	handler.review(writer, request, handler.service.Reject)
}

// DELETE /api/v1/payments/{paymentID} (admin).
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paymentID, err := requestutil.Int64Param(request, FieldPaymentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), identity, paymentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

type decision func(ctx context.Context, reviewer *sec.Identity, paymentID int64) (*Payment, error)

func (handler *Handler) review(writer http.ResponseWriter, request *http.Request, decide decision) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paymentID, err := requestutil.Int64Param(request, FieldPaymentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payment, err := decide(request.Context(), identity, paymentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, payment)
}
