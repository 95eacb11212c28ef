// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

// Package constants holds fixed values that are not worth an environment variable.
package constants

import "time"

const (
	AppName    = "evolve-nova-api"
	AppVersion = "1.0.0"
)

// HTTP server. Payment receipts arrive as multipart uploads, so reads and
// writes get more room than a JSON-only API would.
const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 30 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	GlobalRequestTimeout     = 30 * time.Second
	ShutdownTimeout          = 30 * time.Second
)

// Per-IP token bucket in front of every route.
const (
	DefaultRateLimitPerMinute = 150
	DefaultRateLimitBurst     = 150
	RateLimitCleanupInterval  = time.Minute
	RateLimitClientTTL        = 3 * time.Minute

	// Login and registration, per IP, on top of the global bucket.
	CredentialRateLimitPerMinute = 10
	CredentialRateLimitBurst     = 5
)

// Session cookie and token signing.
const (
	AuthIssuer           = "evolve-nova"
	TokenCookieName      = "token"
	TokenCookiePath      = "/"
	MinTokenSecretLength = 32 // bytes of HMAC key
)

const (
	HeaderXRequestID      = "X-Request-ID"
	HeaderXRealIP         = "X-Real-IP"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderXForwardedProto = "X-Forwarded-Proto"
	HeaderOrigin          = "Origin"
)

// Keys of the readiness report.
const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// Redis layout when SESSION_STORE=redis:
//
//	auth:session:<token>             -> session hash, expires with the token
//	auth:account_sessions:<account>  -> set of that account's tokens
const (
	RedisPrefixSession         = "auth:session:"
	RedisPrefixAccountSessions = "auth:account_sessions:"
)

// Payment receipts are stored as payments/<account id>/<uuid>.<ext>.
const (
	MaxProofUploadBytes = 5 << 20
	ProofKeyPrefix      = "payments"
)
