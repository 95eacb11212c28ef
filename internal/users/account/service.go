// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/validate"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/auth"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

// # Service Layer

// Service orchestrates profile updates and account administration.
type Service struct {
	accountRepository AccountRepository
	sessions          SessionTerminator
	passwords         PasswordResetter
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, sessions SessionTerminator, passwords PasswordResetter, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessions:          sessions,
		passwords:         passwords,
		logger:            logger,
	}
}

// # Profile Management

// GetProfile retrieves the caller's own account.
func (service *Service) GetProfile(ctx context.Context, accountID int64) (*auth.Account, error) {
	return service.accountRepository.FindByID(ctx, accountID)
}

// UpdateProfileInput defines the mutable subset of profile fields.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

/*
UpdateProfile applies a partial set of changes to the caller's profile.

Returns:
  - *auth.Account: The updated profile
  - error: ValidationError, DuplicateEmail or storage failures
*/
func (service *Service) UpdateProfile(ctx context.Context, accountID int64, input UpdateProfileInput) (*auth.Account, error) {
	account, err := service.accountRepository.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := applyProfile(account, input); err != nil {
		return nil, err
	}

	if err := service.accountRepository.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}

	service.logger.Info("account_profile_updated", slog.Int64("user_id", accountID))

	return account, nil
}

// applyProfile validates the supplied fields and copies them onto account.
func applyProfile(account *auth.Account, input UpdateProfileInput) error {
	validator := &validate.Validator{}

	if input.Name != nil {
		account.Name = strings.TrimSpace(norm.NFC.String(*input.Name))
		validator.Required(FieldName, account.Name).MaxLen(FieldName, account.Name, auth.MaxNameLength)
	}

	if input.Email != nil {
		account.Email = strings.TrimSpace(*input.Email)
		validator.Required(FieldEmail, account.Email).
			MaxLen(FieldEmail, account.Email, auth.MaxEmailLength).
			Email(FieldEmail, account.Email)
	}

	return validator.Err()
}

// # Administration

// UpdateAccountInput is an administrator's edit of a student. An empty
// Password leaves the password unchanged.
type UpdateAccountInput struct {
	Name     *string
	Email    *string
	Password *string
}

/*
UpdateAccount edits the name, email or password of any account.

A password reset ends every session of the account. Everything is validated
before the first write.

Returns:
  - *auth.Account: The updated account
  - error: ValidationError, WeakPassword, DuplicateEmail, NotFound or storage failures
*/
func (service *Service) UpdateAccount(ctx context.Context, actor *sec.Identity, accountID int64, input UpdateAccountInput) (*auth.Account, error) {
	if input.Password != nil && *input.Password == "" {
		input.Password = nil
	}

	profileChanged := input.Name != nil || input.Email != nil
	if !profileChanged && input.Password == nil {
		return nil, apperr.ValidationError("Provide a name, email or password to update")
	}

	account, err := service.accountRepository.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := applyProfile(account, UpdateProfileInput{Name: input.Name, Email: input.Email}); err != nil {
		return nil, err
	}

	if input.Password != nil {
		if err := service.passwords.CheckPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	if profileChanged {
		if err := service.accountRepository.UpdateProfile(ctx, account); err != nil {
			return nil, err
		}
	}

	if input.Password != nil {
		if err := service.passwords.ResetPassword(ctx, accountID, *input.Password); err != nil {
			return nil, err
		}
	}

	service.logger.Info("account_updated_by_admin",
		slog.Int64("user_id", accountID),
		slog.Int64("admin_id", actorID(actor)),
		slog.Bool("password_reset", input.Password != nil),
	)

	return account, nil
}

// ListStudents returns one page of student accounts, optionally filtered by params.Search.
func (service *Service) ListStudents(ctx context.Context, params pagination.Params) ([]*auth.Account, pagination.Meta, error) {
	accounts, total, err := service.accountRepository.ListStudents(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return accounts, pagination.NewMeta(params, total), nil
}

// SearchStudents matches name or email against query and returns at most [SearchLimit] rows.
func (service *Service) SearchStudents(ctx context.Context, query string) ([]*auth.Account, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validate.Fail(FieldQuery, "Search query is required")
	}

	accounts, _, err := service.accountRepository.ListStudents(ctx, pagination.Params{
		Page:   1,
		Limit:  SearchLimit,
		Search: query,
	})
	if err != nil {
		return nil, fmt.Errorf("account_service_search_failed: %w", err)
	}
	return accounts, nil
}

// GetAccount retrieves any account by ID.
func (service *Service) GetAccount(ctx context.Context, accountID int64) (*auth.Account, error) {
	return service.accountRepository.FindByID(ctx, accountID)
}

/*
UpdateStatus suspends or reactivates an account.

Suspension ends every session of the account.

Returns:
  - *auth.Account: The account with its new status
  - error: ValidationError, Forbidden (self-targeting), NotFound or storage failures
*/
func (service *Service) UpdateStatus(ctx context.Context, actor *sec.Identity, accountID int64, status sec.AccountStatus) (*auth.Account, error) {
	if !status.Valid() {
		return nil, validate.Fail(FieldStatus, "Status must be 'active' or 'suspended'")
	}

	if actor != nil && actor.ID == accountID {
		return nil, apperr.Forbidden("You cannot change the status of your own account")
	}

	account, err := service.accountRepository.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := service.accountRepository.UpdateStatus(ctx, accountID, status); err != nil {
		return nil, err
	}
	account.Status = status

	if status == sec.StatusSuspended {
		if err := service.sessions.SupersedeAll(ctx, accountID); err != nil {
			return nil, err
		}
		service.logger.Warn("account_suspended", slog.Int64("user_id", accountID))
	} else {
		service.logger.Info("account_reactivated", slog.Int64("user_id", accountID))
	}

	return account, nil
}

// DeleteAccount ends every session of the account and removes it.
func (service *Service) DeleteAccount(ctx context.Context, actor *sec.Identity, accountID int64) error {
	if actor != nil && actor.ID == accountID {
		return apperr.Forbidden("You cannot delete your own account")
	}

	if err := service.sessions.SupersedeAll(ctx, accountID); err != nil {
		return err
	}

	if err := service.accountRepository.Delete(ctx, accountID); err != nil {
		return err
	}

	service.logger.Warn("account_deleted", slog.Int64("user_id", accountID))

	return nil
}

func actorID(actor *sec.Identity) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}
