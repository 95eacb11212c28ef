// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package course

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/request"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/respond"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/validate"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

// Handler serves the catalogue. It needs no session.
type Handler struct {
	service *Service
}

// NewHandler constructs a new course [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes is mounted under /courses. Other packages may add sub-routes to it.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{courseID}", handler.get)
	return router
}

/*
GET /api/v1/courses?page=&limit=&q=&min_price=&max_price=.

Response:
  - 200: []Course with pagination meta
  - 400: VALIDATION_ERROR for an unparsable or inverted price range
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{Params: pagination.FromRequest(request)}

	var err error
	if filter.MinPrice, err = priceParam(request, FieldMinPrice); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if filter.MaxPrice, err = priceParam(request, FieldMaxPrice); err != nil {
		respond.Error(writer, request, err)
		return
	}

	courses, meta, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, courses, meta)
}

// GET /api/v1/courses/{courseID}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.Int64Param(request, FieldCourseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.Get(request.Context(), courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

// priceParam returns nil when the parameter is absent.
func priceParam(request *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(request.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, validate.Fail(name, "Must be a number")
	}
	return &value, nil
}
