// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package enrollment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/request"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/respond"
)

// Handler exposes the caller's enrollments.
type Handler struct {
	store *PostgresStore
}

// NewHandler constructs a new enrollment [Handler].
func NewHandler(store *PostgresStore) *Handler {
	return &Handler{store: store}
}

// Routes must be mounted behind RequireSession.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/mine", handler.listMine)
	return router
}

// GET /api/v1/enrollments/mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrollments, err := handler.store.ListForAccount(request.Context(), identity.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if enrollments == nil {
		enrollments = []*Enrollment{}
	}

	respond.OK(writer, enrollments)
}
