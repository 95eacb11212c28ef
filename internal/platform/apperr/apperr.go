// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package apperr is the error vocabulary shared by services and the HTTP layer.

Services return an [*AppError] for every outcome the client is expected to
handle: a bad form, a wrong password, a suspended account, a lesson behind an
enrollment. Each carries a stable machine code, and the code fixes the HTTP
status. Anything that is not an [*AppError] is an unexpected failure and is
rendered as a generic 500 by the respond package.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine codes. The frontend switches on these, so they never change.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeAccountSuspended   = "ACCOUNT_SUSPENDED"
	CodeEnrollmentRequired = "ENROLLMENT_REQUIRED"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeUnavailable        = "SERVICE_UNAVAILABLE"
)

var statusByCode = map[string]int{
	CodeValidation:         http.StatusBadRequest,
	CodeWeakPassword:       http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeAccountSuspended:   http.StatusForbidden,
	CodeEnrollmentRequired: http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeDuplicateEmail:     http.StatusConflict,
	CodeRateLimited:        http.StatusTooManyRequests,
	CodeInternal:           http.StatusInternalServerError,
	CodeUnavailable:        http.StatusServiceUnavailable,
}

// AppError is an outcome the API reports to the client.
//
// Message is shown to users as is. Cause is only ever logged.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// New builds an error for code. Unknown codes map to 500.
func New(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// NotFound reads "<resource> not found".
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found")
}

func Unauthorized(message string) *AppError { return New(CodeUnauthorized, message) }

func Forbidden(message string) *AppError { return New(CodeForbidden, message) }

func Conflict(message string) *AppError { return New(CodeConflict, message) }

func ServiceUnavailable(message string) *AppError { return New(CodeUnavailable, message) }

// ValidationError carries the per-field failures in Details.
func ValidationError(message string, details ...FieldError) *AppError {
	err := New(CodeValidation, message)
	err.Details = details
	return err
}

func RateLimited(retryAfterSeconds int) *AppError {
	return New(CodeRateLimited, fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

func DuplicateEmail() *AppError {
	return New(CodeDuplicateEmail, "Email is already registered")
}

// WeakPassword carries the password policy's reason.
func WeakPassword(reason string) *AppError {
	return New(CodeWeakPassword, reason)
}

// InvalidCredentials is the same for an unknown email and a wrong password.
func InvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid email or password")
}

func AccountSuspended() *AppError {
	return New(CodeAccountSuspended, "This account is suspended")
}

func EnrollmentRequired() *AppError {
	return New(CodeEnrollmentRequired, "You must be enrolled in this course to watch this lesson")
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	err := New(CodeInternal, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

func HasCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}
