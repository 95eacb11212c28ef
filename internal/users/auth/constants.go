// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package auth

// # Input Constraints

const (
	// MaxNameLength mirrors the VARCHAR(255) of users.name.
	MaxNameLength = 255

	// MaxEmailLength mirrors the VARCHAR(255) of users.email.
	MaxEmailLength = 255
)
