// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

// Command api is the entry point for the Evolve Nova HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Run database migrations (idempotent).
//  4. Connect to PostgreSQL (pgxpool) and, when configured, Redis.
//  5. Build the session registry, token codec and object store.
//  6. Seed the bootstrap administrator.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/api"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/billing/payment"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/course"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/enrollment"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/learning/lesson"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/config"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/constants"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/cookie"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/ctxutil"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/migration"
	pgstore "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/postgres"
	redisstore "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/redis"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/storage"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/account"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Evolve Nova] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("session_store", cfg.SessionStore),
		slog.Bool("storage_enabled", cfg.StorageEnabled()),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. PostgreSQL and Redis ───────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	checks := []api.HealthCheck{
		{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
	}

	var rdb *goredis.Client
	if cfg.SessionStore == config.SessionStoreRedis {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		checks = append(checks, api.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		})
	}

	// ── 5. Security and Storage ───────────────────────────────────────────
	codec, err := sec.NewTokenCodec([]byte(cfg.SessionSecret), constants.AuthIssuer, time.Now)
	must(log, err, "initialize token codec")

	hasher, err := sec.NewPasswordHasher(cfg.BcryptCost)
	must(log, err, "initialize password hasher")

	var sessionStore auth.SessionStore = auth.NewPostgresSessionStore(pool)
	if rdb != nil {
		sessionStore = auth.NewRedisSessionStore(rdb, cfg.TokenTTL)
	}
	sessions := auth.NewSessionRegistry(sessionStore, time.Now)

	var proofs payment.ProofStore
	if cfg.StorageEnabled() {
		storageCfg := storage.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}
		client, err := storage.NewS3Client(startupCtx, storageCfg)
		must(log, err, "initialize object storage")
		proofs = storage.NewS3ObjectStore(client, storageCfg)
	} else {
		log.Warn("object_storage_disabled", slog.String("effect", "payment submissions return 503"))
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	cookies := cookie.Policy{CrossSite: cfg.CookieCrossSite, ForceSecure: cfg.IsProduction()}

	accounts := auth.NewAccountRepository(pool)
	authService := auth.NewService(accounts, sessions, codec, hasher, auth.Config{
		TokenTTL:       cfg.TokenTTL,
		PasswordPolicy: sec.DefaultPasswordPolicy,
	})
	gate := auth.NewGate(accounts, sessions, codec)

	if cfg.AdminEmail != "" {
		seedAdmin(startupCtx, log, authService, cfg)
	}

	accountService := account.NewService(account.NewAccountRepository(pool), sessions, authService, log)

	courseService := course.NewService(course.NewPostgresRepository(pool))

	enrollments := enrollment.NewPostgresStore(pool)
	lessonPolicy := lesson.NewAccessPolicy(lesson.NewPostgresRepository(pool), enrollments)

	paymentService := payment.NewService(payment.NewPostgresRepository(pool), proofs)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(checks, log)

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Gate:       gate,
		Cookies:    cookies,
		Auth:       auth.NewHandler(authService, gate, cookies),
		Account:    account.NewHandler(accountService),
		Course:     course.NewHandler(courseService),
		Lesson:     lesson.NewHandler(lessonPolicy),
		Enrollment: enrollment.NewHandler(enrollments),
		Payment:    payment.NewHandler(paymentService),
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// seedAdmin creates the bootstrap administrator once. Existing accounts are left untouched.
func seedAdmin(ctx context.Context, log *slog.Logger, service *auth.Service, cfg *config.Config) {
	_, _, err := service.EnsureAdmin(ctxutil.WithLogger(ctx, log), auth.RegisterInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	must(log, err, "seed administrator")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
