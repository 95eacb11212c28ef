// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package course

import (
	"context"
	"fmt"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/validate"
	"github.com/nagymedo25/Evolve-Nova-Back/pkg/pagination"
)

// Service implements catalogue browsing.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
List returns one page of the catalogue.

Returns:
  - []*Course: The page, possibly empty
  - pagination.Meta: Paging information for the response
  - error: ValidationError for a negative or inverted price range
*/
func (service *Service) List(ctx context.Context, filter Filter) ([]*Course, pagination.Meta, error) {
	validator := &validate.Validator{}
	if filter.MinPrice != nil {
		validator.Custom(FieldMinPrice, *filter.MinPrice < 0, "Must not be negative")
	}
	if filter.MaxPrice != nil {
		validator.Custom(FieldMaxPrice, *filter.MaxPrice < 0, "Must not be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil {
		validator.Custom(FieldMaxPrice, *filter.MaxPrice < *filter.MinPrice, "Must not be below min_price")
	}
	if err := validator.Err(); err != nil {
		return nil, pagination.Meta{}, err
	}

	courses, total, err := service.repository.List(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("course_service_list_failed: %w", err)
	}

	return courses, pagination.NewMeta(filter.Params, total), nil
}

// Get returns one course.
func (service *Service) Get(ctx context.Context, courseID int64) (*Course, error) {
	return service.repository.FindByID(ctx, courseID)
}
