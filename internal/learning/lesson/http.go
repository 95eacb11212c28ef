// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package lesson

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/request"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/respond"
)

const (
	paramCourseID = "courseID"
	paramLessonID = "lessonID"
)

// Handler serves lessons through the [AccessPolicy].
//
// Both routers are meant to sit behind OptionalSession so that anonymous
// visitors can browse previews.
type Handler struct {
	policy *AccessPolicy
}

// NewHandler constructs a new lesson [Handler].
func NewHandler(policy *AccessPolicy) *Handler {
	return &Handler{policy: policy}
}

// MountCourseRoutes adds the lesson listing to the router served at /courses.
func (handler *Handler) MountCourseRoutes(router chi.Router) {
	router.Get("/{courseID}/lessons", handler.listForCourse)
}

// Routes is mounted under /lessons.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{lessonID}", handler.getLesson)
	return router
}

/*
GET /api/v1/courses/{courseID}/lessons.

Response:
  - 200: []View: Lessons with is_accessible; locked lessons carry no video_url
*/
func (handler *Handler) listForCourse(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.Int64Param(request, paramCourseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.policy.ListForCourse(request.Context(), requestutil.Identity(request), courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

/*
GET /api/v1/lessons/{lessonID}.

Response:
  - 200: Lesson
  - 401: UNAUTHORIZED for anonymous callers on paid lessons
  - 403: ENROLLMENT_REQUIRED
  - 404: NOT_FOUND
*/
func (handler *Handler) getLesson(writer http.ResponseWriter, request *http.Request) {
	lessonID, err := requestutil.Int64Param(request, paramLessonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lesson, err := handler.policy.Authorize(request.Context(), requestutil.Identity(request), lessonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lesson)
}
