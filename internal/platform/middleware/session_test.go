// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/cookie"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/ctxutil"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/middleware"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
)

type stubGate struct {
	identity *sec.Identity
	err      error
	calls    int
}

func (gate *stubGate) Authenticate(_ context.Context, _ string) (*sec.Identity, error) {
	gate.calls++
	return gate.identity, gate.err
}

// echoIdentity writes the authenticated name, or "anonymous".
var echoIdentity = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		_, _ = writer.Write([]byte("anonymous"))
		return
	}
	_, _ = writer.Write([]byte(identity.Name))
})

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/lessons/1", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	return r
}

func clearedCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

/*
TestRequireSession covers each branch of the protected-route gate.
*/
func TestRequireSession(t *testing.T) {
	alice := &sec.Identity{ID: 1, Name: "Alice", Role: sec.RoleStudent}

	tests := []struct {
		name        string
		token       string
		gate        *stubGate
		wantStatus  int
		wantBody    string
		wantCleared bool
	}{
		{"no_cookie", "", &stubGate{}, http.StatusUnauthorized, "", false},
		{"expired", "t", &stubGate{err: apperr.Unauthorized("Session expired")}, http.StatusUnauthorized, "", true},
		{"suspended", "t", &stubGate{err: apperr.AccountSuspended()}, http.StatusForbidden, "", true},
		{"store_down", "t", &stubGate{err: apperr.Internal(errors.New("redis down"))}, http.StatusInternalServerError, "", false},
		{"valid", "t", &stubGate{identity: alice}, http.StatusOK, "Alice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.RequireSession(tt.gate, cookie.Policy{})(echoIdentity)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, requestWithToken(tt.token))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCleared, clearedCookie(rec))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

/*
TestOptionalSession verifies anonymous fallthrough and the suspension exception.
*/
func TestOptionalSession(t *testing.T) {
	t.Run("no_cookie_is_anonymous", func(t *testing.T) {
		gate := &stubGate{}
		rec := httptest.NewRecorder()

		middleware.OptionalSession(gate, cookie.Policy{})(echoIdentity).ServeHTTP(rec, requestWithToken(""))

		assert.Equal(t, "anonymous", rec.Body.String())
		assert.Zero(t, gate.calls)
	})

	t.Run("revoked_session_clears_and_continues", func(t *testing.T) {
		gate := &stubGate{err: apperr.Unauthorized("Session is no longer valid")}
		rec := httptest.NewRecorder()

		middleware.OptionalSession(gate, cookie.Policy{})(echoIdentity).ServeHTTP(rec, requestWithToken("t"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
		assert.True(t, clearedCookie(rec))
	})

	t.Run("suspended_is_refused", func(t *testing.T) {
		gate := &stubGate{err: apperr.AccountSuspended()}
		rec := httptest.NewRecorder()

		middleware.OptionalSession(gate, cookie.Policy{})(echoIdentity).ServeHTTP(rec, requestWithToken("t"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.True(t, clearedCookie(rec))
	})

	t.Run("valid_session_attaches_identity", func(t *testing.T) {
		gate := &stubGate{identity: &sec.Identity{ID: 2, Name: "Bob"}}
		rec := httptest.NewRecorder()

		middleware.OptionalSession(gate, cookie.Policy{})(echoIdentity).ServeHTTP(rec, requestWithToken("t"))

		assert.Equal(t, "Bob", rec.Body.String())
	})
}

/*
TestRequireRole verifies the admin guard.
*/
func TestRequireRole(t *testing.T) {
	guard := middleware.RequireRole(sec.RoleAdmin)(echoIdentity)

	tests := []struct {
		name     string
		identity *sec.Identity
		want     int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"student", &sec.Identity{ID: 1, Role: sec.RoleStudent}, http.StatusForbidden},
		{"admin", &sec.Identity{ID: 2, Name: "Root", Role: sec.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
			if tt.identity != nil {
				r = r.WithContext(ctxutil.WithIdentity(r.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()

			guard.ServeHTTP(rec, r)
			require.Equal(t, tt.want, rec.Code)
		})
	}
}
