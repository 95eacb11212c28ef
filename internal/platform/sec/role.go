// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package sec

import "time"

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access: payments review, account administration, every lesson.
	RoleAdmin UserRole = "admin"

	// Default role for registered learners
	RoleStudent UserRole = "student"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleStudent:
		return 10
	default:
		return 0
	}
}

// # Account Lifecycle

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
)

// Valid reports whether s is a known status.
func (s AccountStatus) Valid() bool {
	return s == StatusActive || s == StatusSuspended
}

// # Authenticated Identity

// Identity is the safe projection of an account attached to an authenticated request.
//
// It never carries the password hash and is safe to serialize to clients.
type Identity struct {
	ID        int64         `json:"user_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      UserRole      `json:"role"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
