// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package respond_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/ctxutil"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/respond"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

func requestWithLogger(buf *bytes.Buffer) *http.Request {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	r := httptest.NewRequest(http.MethodGet, "/api/v1/payments/mine", nil)
	ctx := ctxutil.WithRequestID(r.Context(), "req-1")
	return r.WithContext(ctxutil.WithLogger(ctx, logger))
}

/*
TestError verifies how errors are rendered and which ones are logged.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantLogged bool
	}{
		{"expected_outcome", apperr.InvalidCredentials(), http.StatusUnauthorized, apperr.CodeInvalidCredentials, false},
		{"wrapped_outcome", fmt.Errorf("login: %w", apperr.AccountSuspended()), http.StatusForbidden, apperr.CodeAccountSuspended, false},
		{"unavailable", apperr.ServiceUnavailable("Payment uploads are not configured"), http.StatusServiceUnavailable, apperr.CodeUnavailable, true},
		{"plain_error", errors.New("dial tcp 10.0.0.3:5432: refused"), http.StatusInternalServerError, apperr.CodeInternal, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			rec := httptest.NewRecorder()

			respond.Error(rec, requestWithLogger(&logs), tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Code)
			assert.NotEmpty(t, body.Error)

			if tc.wantLogged {
				assert.Contains(t, logs.String(), "api_server_error")
				assert.Contains(t, logs.String(), "req-1")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

/*
TestError_HidesCause verifies driver details are logged but never sent.
*/
func TestError_HidesCause(t *testing.T) {
	var logs bytes.Buffer
	rec := httptest.NewRecorder()

	respond.Error(rec, requestWithLogger(&logs), errors.New("dial tcp 10.0.0.3:5432: refused"))

	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
	assert.Contains(t, logs.String(), "10.0.0.3")
}

func TestError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperr.ValidationError("Invalid input", apperr.FieldError{Field: "email", Message: "Invalid email format"})

	respond.Error(rec, requestWithLogger(&bytes.Buffer{}), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"error":"Invalid input","code":"VALIDATION_ERROR","details":[{"field":"email","message":"Invalid email format"}]}`,
		rec.Body.String())
}

func TestSuccessEnvelopes(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respond.OK(rec, map[string]string{"name": "Mona"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		assert.JSONEq(t, `{"data":{"name":"Mona"}}`, rec.Body.String())
	})

	t.Run("created", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respond.Created(rec, map[string]int{"payment_id": 3})

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("paginated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		meta := pagination.NewMeta(pagination.Params{Page: 1, Limit: 1}, 2)
		respond.Paginated(rec, []string{"Mona"}, meta)

		assert.JSONEq(t,
			`{"data":["Mona"],"meta":{"page":1,"limit":1,"total":2,"total_pages":2,"has_next":true}}`,
			rec.Body.String())
	})

	t.Run("no_content", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respond.NoContent(rec)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
