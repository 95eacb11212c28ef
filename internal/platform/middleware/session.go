// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package middleware

import (
	"context"
	"net/http"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/cookie"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/ctxutil"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/respond"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
)

// SessionAuthenticator resolves a presented session token into an identity.
//
// Defining it here decouples the middleware from the auth service, so tests can
// inject a fake.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*sec.Identity, error)
}

/*
RequireSession runs the access gate and rejects the request on any failure.

# Flow
 1. No token cookie: 401.
 2. Gate failure (expired, invalid, unknown account, suspended, revoked session):
    the cookie is cleared and the gate's error is returned.
 3. Success: the identity is attached to the context.

Store outages (5xx) do not clear the cookie; the session may still be valid.
*/
func RequireSession(gate SessionAuthenticator, cookies cookie.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, ok := cookies.Read(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			identity, err := gate.Authenticate(request.Context(), token)
			if err != nil {
				if isClientFailure(err) {
					cookies.Clear(writer, request)
				}
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, withIdentity(request, identity))
		})
	}
}

/*
OptionalSession resolves the session when one is presented, but lets anonymous
requests through.

A rejected cookie is cleared and the request continues anonymously, except for a
suspended account, which is always refused with 403.
*/
func OptionalSession(gate SessionAuthenticator, cookies cookie.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, ok := cookies.Read(request)
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			identity, err := gate.Authenticate(request.Context(), token)
			switch {
			case err == nil:
				next.ServeHTTP(writer, withIdentity(request, identity))
			case !isClientFailure(err):
				respond.Error(writer, request, err)
			case apperr.HasCode(err, apperr.CodeAccountSuspended):
				cookies.Clear(writer, request)
				respond.Error(writer, request, err)
			default:
				cookies.Clear(writer, request)
				next.ServeHTTP(writer, request)
			}
		})
	}
}

// RequireRole blocks requests whose identity does not hold at least role.
//
// Must be registered after [RequireSession].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !identity.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func withIdentity(request *http.Request, identity *sec.Identity) *http.Request {
	recordIdentity(request.Context(), identity.ID)
	return request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
}

// isClientFailure reports whether err is an expected 4xx outcome of the gate.
func isClientFailure(err error) bool {
	ae := apperr.As(err)
	return ae != nil && ae.HTTPStatus < http.StatusInternalServerError
}
