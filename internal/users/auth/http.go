// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/cookie"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/middleware"
	requestutil "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/request"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// The signed token only ever travels in the HttpOnly cookie; response bodies
// never carry it.
type Handler struct {
	authService *Service
	gate        middleware.SessionAuthenticator
	cookies     cookie.Policy
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, gate middleware.SessionAuthenticator, cookies cookie.Policy) *Handler {
	return &Handler{authService: service, gate: gate, cookies: cookies}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register        : Creates a new student account.
//   - POST /login           : Authenticates and sets the session cookie.
//   - POST /logout          : Ends the current session and clears the cookie.
//   - PUT  /change-password : Rotates the password and ends every session.
func (handler *Handler) Routes(throttle ...func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Credential endpoints get the caller's extra throttle on top of the global limit.
	router.With(throttle...).Post("/register", handler.register)
	router.With(throttle...).Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(handler.gate, handler.cookies))
		r.Put("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
Register handles the creation of a new student account.

POST /api/v1/auth/register

Response:
  - 201: {"user": Account}
  - 400: VALIDATION_ERROR or WEAK_PASSWORD
  - 409: DUPLICATE_EMAIL
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{FieldUser: account})
}

/*
Login authenticates credentials and sets the session cookie.

POST /api/v1/auth/login

Response:
  - 200: {"user": Account, "expires_at": time}
  - 401: INVALID_CREDENTIALS
  - 403: ACCOUNT_SUSPENDED
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.Set(writer, request, result.SignedToken, result.ExpiresAt)

	respond.OK(writer, map[string]any{
		FieldUser:      result.Account,
		FieldExpiresAt: result.ExpiresAt,
	})
}

/*
Logout ends the session named by the cookie, if any, and clears the cookie.

POST /api/v1/auth/logout

Always answers 200 unless the session store fails.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if token, ok := handler.cookies.Read(request); ok {
		if err := handler.authService.LogoutToken(request.Context(), token); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.cookies.Clear(writer, request)
	respond.OK(writer, map[string]string{FieldMessage: "Logged out"})
}

/*
ChangePassword rotates the caller's password.

PUT /api/v1/auth/change-password

Every session ends, the current one included, so the cookie is cleared too.

Response:
  - 200: {"message": "..."}
  - 401: INVALID_CREDENTIALS
  - 400: WEAK_PASSWORD
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ChangePassword(request.Context(), identity.ID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.Clear(writer, request)
	respond.OK(writer, map[string]string{FieldMessage: "Password updated, please log in again"})
}
