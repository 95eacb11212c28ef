// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/ctxutil"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/validate"
)

// # Contracts & Types

// Config holds the tunables of the authentication flow.
type Config struct {
	// TokenTTL is the lifetime of a signed token and of its cookie.
	TokenTTL time.Duration

	// PasswordPolicy is applied to new passwords (register, change).
	PasswordPolicy sec.PasswordPolicy
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries the credentials of a login request.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Account      *Account
	SessionToken string
	SignedToken  string
	ExpiresAt    time.Time
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login or
// session supersession must be reviewed with the gate in mind.
type Service struct {
	accounts AccountRepository
	sessions *SessionRegistry
	tokens   *sec.TokenCodec
	hasher   *sec.PasswordHasher
	config   Config
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	accounts AccountRepository,
	sessions *SessionRegistry,
	tokens *sec.TokenCodec,
	hasher *sec.PasswordHasher,
	config Config,
) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		config:   config,
	}
}

// # Registration Flow

/*
Register creates a new student account.

Description: Validates the payload, applies the password policy, rejects known
emails and persists a bcrypt hash. The new account is active.

Returns:
  - *Account: The persisted account (hash never serialized)
  - error: ValidationError, WeakPassword, DuplicateEmail or storage failures
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Account, error) {
	name := normalizeName(input.Name)
	email := strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).
		MaxLen(FieldName, name, MaxNameLength).
		Required(FieldEmail, email).
		MaxLen(FieldEmail, email, MaxEmailLength).
		Email(FieldEmail, email)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if violation := service.config.PasswordPolicy.Check(input.Password); violation != nil {
		return nil, apperr.WeakPassword(violation.Message)
	}

	// The unique index catches the race; this lookup gives the common case a clean answer.
	_, err := service.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.DuplicateEmail()
	case !errors.Is(err, ErrAccountNotFound):
		return nil, err
	}

	hash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	account := &Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleStudent,
		Status:       sec.StatusActive,
	}
	if err := service.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).Info("account_registered", slog.Int64("user_id", account.ID))

	return account, nil
}

// # Session Flow

/*
Login verifies credentials and opens the single live session of the account.

# Flow
 1. Unknown email: a dummy bcrypt comparison runs, then InvalidCredentials.
 2. Wrong password: InvalidCredentials with the same message.
 3. Suspended account: AccountSuspended (only after the password matched).
 4. Every prior session is superseded, a new one is created and signed.

Returns:
  - *LoginResult: Account, raw session token, signed token and its expiry
  - error: InvalidCredentials, AccountSuspended or infrastructure failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	account, err := service.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			service.hasher.CompareDummy(input.Password)
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if !service.hasher.Compare(account.PasswordHash, input.Password) {
		return nil, apperr.InvalidCredentials()
	}

	if account.IsSuspended() {
		return nil, apperr.AccountSuspended()
	}

	// Supersede then create is not atomic: concurrent logins resolve last-write-wins.
	if err := service.sessions.SupersedeAll(ctx, account.ID); err != nil {
		return nil, err
	}

	sessionToken, err := service.sessions.Create(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	signed, claims, err := service.tokens.Encode(sec.SessionClaims{
		AccountID:    account.ID,
		Email:        account.Email,
		Role:         account.Role,
		SessionToken: sessionToken,
	}, service.config.TokenTTL)
	if err != nil {
		if cleanupErr := service.sessions.DeleteByToken(ctx, sessionToken); cleanupErr != nil {
			ctxutil.GetLogger(ctx).Warn("login_session_cleanup_failed",
				slog.Int64("user_id", account.ID),
				slog.String("error", cleanupErr.Error()),
			)
		}
		return nil, apperr.Internal(err)
	}

	ctxutil.GetLogger(ctx).Info("login_succeeded", slog.Int64("user_id", account.ID))

	return &LoginResult{
		Account:      account,
		SessionToken: sessionToken,
		SignedToken:  signed,
		ExpiresAt:    claims.ExpiresAt,
	}, nil
}

/*
ChangePassword rotates the password of an account and ends all of its sessions.

Returns:
  - error: InvalidCredentials if current does not match, WeakPassword if next is rejected
*/
func (service *Service) ChangePassword(ctx context.Context, accountID int64, current, next string) error {
	account, err := service.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !service.hasher.Compare(account.PasswordHash, current) {
		return apperr.InvalidCredentials()
	}

	if err := service.rotatePassword(ctx, accountID, next); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).Info("password_changed", slog.Int64("user_id", accountID))

	return nil
}

// CheckPassword applies the password policy without touching any account.
func (service *Service) CheckPassword(password string) error {
	if violation := service.config.PasswordPolicy.Check(password); violation != nil {
		return apperr.WeakPassword(violation.Message)
	}
	return nil
}

/*
ResetPassword sets a new password chosen by an administrator and ends all
sessions of the account. The current password is not required.

Returns:
  - error: WeakPassword, NotFound or storage failures
*/
func (service *Service) ResetPassword(ctx context.Context, accountID int64, next string) error {
	if err := service.rotatePassword(ctx, accountID, next); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).Warn("password_reset", slog.Int64("user_id", accountID))

	return nil
}

func (service *Service) rotatePassword(ctx context.Context, accountID int64, next string) error {
	if err := service.CheckPassword(next); err != nil {
		return err
	}

	hash, err := service.hasher.Hash(next)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.accounts.UpdatePassword(ctx, accountID, hash); err != nil {
		return err
	}

	return service.sessions.SupersedeAll(ctx, accountID)
}

// Logout ends one session. Logging out twice is not an error.
func (service *Service) Logout(ctx context.Context, sessionToken string) error {
	return service.sessions.DeleteByToken(ctx, sessionToken)
}

// LogoutToken ends the session named by a signed token.
//
// Expired tokens still name their session as long as the signature verifies.
// Tokens that do not verify are ignored.
func (service *Service) LogoutToken(ctx context.Context, signedToken string) error {
	claims, err := service.tokens.Decode(signedToken)
	if err != nil && !errors.Is(err, sec.ErrTokenExpired) {
		return nil
	}
	return service.Logout(ctx, claims.SessionToken)
}

// # Administration Bootstrap

/*
EnsureAdmin creates an administrator account unless the email is already registered.

Returns:
  - *Account: The existing or newly created account
  - bool: true when a new account was created
  - error: ValidationError, WeakPassword or storage failures
*/
func (service *Service) EnsureAdmin(ctx context.Context, input RegisterInput) (*Account, bool, error) {
	name := normalizeName(input.Name)
	email := strings.TrimSpace(input.Email)

	existing, err := service.accounts.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != sec.RoleAdmin {
			ctxutil.GetLogger(ctx).Warn("admin_seed_email_taken_by_non_admin",
				slog.Int64("user_id", existing.ID))
		}
		return existing, false, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, false, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, name).
		MaxLen(FieldName, name, MaxNameLength).
		Required(FieldEmail, email).
		Email(FieldEmail, email)
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	if violation := service.config.PasswordPolicy.Check(input.Password); violation != nil {
		return nil, false, apperr.WeakPassword(violation.Message)
	}

	hash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, false, apperr.Internal(err)
	}

	account := &Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleAdmin,
		Status:       sec.StatusActive,
	}
	if err := service.accounts.Create(ctx, account); err != nil {
		return nil, false, err
	}

	ctxutil.GetLogger(ctx).Info("admin_account_created", slog.Int64("user_id", account.ID))

	return account, true, nil
}

// normalizeName applies NFC so visually identical names compare equal, then trims.
func normalizeName(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}
