// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package respond writes the API's JSON envelopes.

Success bodies wrap their payload in "data" (plus "meta" for paged lists).
Failures always carry a human-readable "error" the frontend shows verbatim,
a machine "code" and, for validation failures, per-field "details".
*/
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/ctxutil"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

// SuccessEnvelope wraps a single resource or a plain list.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps one page of an admin listing.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the body of every 4xx and 5xx response.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes payload with status. Responses are per-user, so nothing is cacheable.
func JSON(writer http.ResponseWriter, status int, payload any) {
	header := writer.Header()
	header.Set("Content-Type", "application/json; charset=utf-8")
	header.Set("Cache-Control", "no-store")
	writer.WriteHeader(status)

	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		slog.Default().Warn("respond_encode_failed", slog.String("error", err.Error()))
	}
}

func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Error renders err as an [ErrorEnvelope].

Errors that are not an [apperr.AppError] become a generic 500 so driver and
network details never reach the client. Every 5xx is logged with the request
ID; expected 4xx outcomes are not.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := classify(err)

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctx := request.Context()

		attrs := []any{
			slog.String("code", appError.Code),
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		}
		if appError.Cause != nil {
			attrs = append(attrs, slog.String("cause", appError.Cause.Error()))
		}
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "api_server_error", attrs...)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

func classify(err error) *apperr.AppError {
	var appError *apperr.AppError
	if errors.As(err, &appError) {
		return appError
	}
	return apperr.Internal(err)
}
