// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/billing/payment"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/enrollment"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/course"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/lesson"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/config"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/constants"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/cookie"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/middleware"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/account"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler.
	Readiness http.HandlerFunc

	// Gate resolves session cookies into identities.
	Gate middleware.SessionAuthenticator

	// Cookies decides the session cookie attributes.
	Cookies cookie.Policy

	Auth       *auth.Handler
	Account    *account.Handler
	Course     *course.Handler
	Lesson     *lesson.Handler
	Enrollment *enrollment.Handler
	Payment    *payment.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. The rate limiter's cleanup loop stops with ctx.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	router := newRouter(ctx, cfg, log, h)

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

func newRouter(ctx context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	limiter := middleware.NewRateLimiter(ctx, constants.DefaultRateLimitPerMinute, constants.DefaultRateLimitBurst)
	credentialLimiter := middleware.NewRateLimiter(ctx, constants.CredentialRateLimitPerMinute, constants.CredentialRateLimitBurst)

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins, cfg.IsDevelopment()))
	r.Use(limiter.Handler)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	requireSession := middleware.RequireSession(h.Gate, h.Cookies)
	optionalSession := middleware.OptionalSession(h.Gate, h.Cookies)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes(credentialLimiter.Handler))

		// Browsing works anonymously; a valid cookie unlocks enrolled lessons.
		api.Group(func(browse chi.Router) {
			browse.Use(optionalSession)
			courses := h.Course.Routes()
			h.Lesson.MountCourseRoutes(courses)
			browse.Mount("/courses", courses)
			browse.Mount("/lessons", h.Lesson.Routes())
		})

		api.Group(func(member chi.Router) {
			member.Use(requireSession)
			member.Mount("/account", h.Account.Routes())
			member.Mount("/enrollments", h.Enrollment.Routes())
			member.Mount("/payments", h.Payment.Routes())
		})

		api.Group(func(admin chi.Router) {
			admin.Use(requireSession, middleware.RequireRole(sec.RoleAdmin))
			admin.Mount("/admin/users", h.Account.AdminRoutes())
		})
	})

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
