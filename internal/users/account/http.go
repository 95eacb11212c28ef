// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/request"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/respond"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

// Handler implements the HTTP layer for profiles and account administration.
//
// # Security
//
// Both routers expect an authenticated identity in the context. The admin router
// must additionally be mounted behind RequireRole(admin).
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the caller's own profile endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)
	router.Put("/me", handler.updateMe)

	return router
}

// AdminRoutes returns the account administration endpoints.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listStudents)
	router.Get("/search", handler.searchStudents)
	router.Get("/{accountID}", handler.getAccount)
	router.Put("/{accountID}", handler.updateAccount)
	router.Patch("/{accountID}/status", handler.updateStatus)
	router.Delete("/{accountID}", handler.deleteAccount)

	return router
}

// # Profile Endpoints

/*
GET /api/v1/account/me.

Response:
  - 200: Account: The caller's profile
  - 401: UNAUTHORIZED
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.GetProfile(request.Context(), identity.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

/*
PUT /api/v1/account/me.

Response:
  - 200: Account: The updated profile
  - 400: VALIDATION_ERROR
  - 409: DUPLICATE_EMAIL
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.UpdateProfile(request.Context(), identity.ID, UpdateProfileInput{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// # Administration Endpoints

/*
GET /api/v1/admin/users?page=&limit=&q=.

Response:
  - 200: []Account with pagination meta
*/
func (handler *Handler) listStudents(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	accounts, meta, err := handler.accountService.ListStudents(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, meta)
}

/*
GET /api/v1/admin/users/search?q=.

Response:
  - 200: []Account, at most SearchLimit entries
  - 400: VALIDATION_ERROR when q is empty
*/
func (handler *Handler) searchStudents(writer http.ResponseWriter, request *http.Request) {
	accounts, err := handler.accountService.SearchStudents(request.Context(), request.URL.Query().Get(FieldQuery))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, accounts)
}

// GET /api/v1/admin/users/{accountID}.
func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.GetAccount(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

type updateAccountRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

/*
PUT /api/v1/admin/users/{accountID}.

Request:
  - body: any of {"name", "email", "password"}

Response:
  - 200: Account
  - 400: VALIDATION_ERROR or WEAK_PASSWORD
  - 404: NOT_FOUND
  - 409: DUPLICATE_EMAIL
*/
func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAccountRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.UpdateAccount(request.Context(), requestutil.Identity(request), accountID, UpdateAccountInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

/*
PATCH /api/v1/admin/users/{accountID}/status.

Request:
  - body: {"status": "active" | "suspended"}

Response:
  - 200: Account with the new status
  - 403: FORBIDDEN when targeting the caller's own account
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateStatusRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.UpdateStatus(
		request.Context(),
		requestutil.Identity(request),
		accountID,
		sec.AccountStatus(input.Status),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// DELETE /api/v1/admin/users/{accountID}.
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.Int64Param(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), requestutil.Identity(request), accountID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
