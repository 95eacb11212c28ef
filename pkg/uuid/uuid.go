// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

/*
Package uuid generates the two kinds of identifiers the platform hands out.

  - New: UUIDv7, time-ordered, used for request correlation ids.
  - NewRandom: UUIDv4, 122 bits from crypto/rand, used for opaque session tokens
    where nothing about the value may be predictable from another value.
*/
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// # Generators

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// NewRandom generates a UUIDv4 string from the system CSPRNG.
func NewRandom() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("uuid: failed to read random bytes: %w", err)
	}
	return id.String(), nil
}
