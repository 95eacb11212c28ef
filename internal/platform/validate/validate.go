// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package validate checks service inputs before they reach a store.

A [Validator] records at most one failure per field, so chaining several rules
on the same field reports only the first that fails. [Validator.Err] folds the
failures into one VALIDATION_ERROR whose message is the first failure.

	v := &validate.Validator{}
	v.Required("name", in.Name).MaxLen("name", in.Name, 100).Email("email", in.Email)
	if err := v.Err(); err != nil {
		return err
	}
*/
package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// One '@', no whitespace, at least one dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator is single-use and not safe for concurrent use.
type Validator struct {
	failures []apperr.FieldError
}

func (v *Validator) check(field string, failed bool, message string) *Validator {
	if failed && !v.Failed(field) {
		v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Failed reports whether field already has a recorded failure.
func (v *Validator) Failed(field string) bool {
	return slices.ContainsFunc(v.failures, func(f apperr.FieldError) bool { return f.Field == field })
}

func (v *Validator) Required(field, value string) *Validator {
	return v.check(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen counts runes, so Arabic names are measured in characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// MaxBytes rejects uploads above limit, reported in whole MiB.
func (v *Validator) MaxBytes(field string, size, limit int64) *Validator {
	return v.check(field, size > limit, fmt.Sprintf("Must not exceed %d MiB", limit>>20))
}

func (v *Validator) Email(field, value string) *Validator {
	return v.check(field, !emailPattern.MatchString(value), "Must be a valid email address")
}

func (v *Validator) PositiveID(field string, value int64) *Validator {
	return v.check(field, value <= 0, "Must be a positive integer")
}

func (v *Validator) Positive(field string, value float64) *Validator {
	return v.check(field, value <= 0, "Must be greater than zero")
}

func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.check(field, !slices.Contains(allowed, value),
		fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	return v.check(field, failed, message)
}

func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(v.failures[0].Message, v.failures...)
}

// Fail builds a single-field validation error outside a chain.
func Fail(field, message string) *apperr.AppError {
	return apperr.ValidationError(message, apperr.FieldError{Field: field, Message: message})
}
