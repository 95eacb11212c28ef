// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, token signing,
// password policy) from the domain logic. Every component is configured through
// its constructor; nothing is read from the environment here.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned by [TokenCodec.Decode] once exp is not strictly in the future.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid covers bad signatures, malformed tokens and missing claims.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// SessionClaims is the payload carried by a signed session token.
type SessionClaims struct {
	AccountID    int64
	Email        string
	Role         UserRole
	SessionToken string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// wireClaims is the JWT body. Custom claims are abbreviated to keep the cookie small.
type wireClaims struct {
	jwt.RegisteredClaims

	AccountID    int64  `json:"uid"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	SessionToken string `json:"sid"`
}

// TokenCodec signs and verifies session tokens with HS256.
type TokenCodec struct {
	secret []byte
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenCodec creates a codec.
//
// Parameters:
//   - secret: HMAC key, at least 32 bytes
//   - issuer: value of the 'iss' claim, enforced on decode
//   - now: clock; nil means [time.Now]
func NewTokenCodec(secret []byte, issuer string, now func() time.Time) (*TokenCodec, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("sec: token secret must be at least 32 bytes, got %d", len(secret))
	}
	if now == nil {
		now = time.Now
	}

	codec := &TokenCodec{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		now:    now,
	}
	codec.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return codec.now() }),
	)

	return codec, nil
}

// Encode signs claims with iat=now and exp=now+ttl at second precision.
//
// It returns the compact token and the claims exactly as they will decode.
func (codec *TokenCodec) Encode(claims SessionClaims, ttl time.Duration) (string, SessionClaims, error) {
	if ttl <= 0 {
		return "", SessionClaims{}, fmt.Errorf("sec: token ttl must be positive")
	}

	issued := codec.now().UTC().Truncate(time.Second)
	claims.IssuedAt = issued
	claims.ExpiresAt = issued.Add(ttl).Truncate(time.Second)

	body := wireClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    codec.issuer,
			Subject:   fmt.Sprintf("%d", claims.AccountID),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		AccountID:    claims.AccountID,
		Email:        claims.Email,
		Role:         string(claims.Role),
		SessionToken: claims.SessionToken,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, body).SignedString(codec.secret)
	if err != nil {
		return "", SessionClaims{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, claims, nil
}

// Decode verifies a token and returns its claims.
//
// The signature is checked before any claim. An expired token with a valid signature
// yields its claims together with [ErrTokenExpired]; every other failure yields
// [ErrTokenInvalid] and empty claims.
func (codec *TokenCodec) Decode(token string) (SessionClaims, error) {
	var body wireClaims

	_, err := codec.parser.ParseWithClaims(token, &body, func(*jwt.Token) (any, error) {
		return codec.secret, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid):
		claims, ok := body.toSessionClaims()
		if !ok {
			return SessionClaims{}, ErrTokenInvalid
		}
		return claims, ErrTokenExpired
	default:
		return SessionClaims{}, ErrTokenInvalid
	}

	claims, ok := body.toSessionClaims()
	if !ok {
		return SessionClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (body wireClaims) toSessionClaims() (SessionClaims, bool) {
	if body.AccountID <= 0 || body.SessionToken == "" || body.ExpiresAt == nil {
		return SessionClaims{}, false
	}

	claims := SessionClaims{
		AccountID:    body.AccountID,
		Email:        body.Email,
		Role:         UserRole(body.Role),
		SessionToken: body.SessionToken,
		ExpiresAt:    body.ExpiresAt.Time.UTC(),
	}
	if body.IssuedAt != nil {
		claims.IssuedAt = body.IssuedAt.Time.UTC()
	}
	return claims, true
}
