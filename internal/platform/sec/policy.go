// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

package sec

import (
	"fmt"
	"unicode"
)

// bcrypt ignores everything past 72 bytes and newer x/crypto rejects it outright.
const maxPasswordBytes = 72

// Policy rejection reasons, in the order they are checked.
const (
	ReasonEmpty         = "empty"
	ReasonTooShort      = "too_short"
	ReasonTooLong       = "too_long"
	ReasonMissingLower  = "missing_lowercase"
	ReasonMissingUpper  = "missing_uppercase"
	ReasonMissingDigit  = "missing_digit"
	ReasonMissingSymbol = "missing_symbol"
)

// PasswordPolicy describes the strength rules applied to new passwords.
type PasswordPolicy struct {
	MinLength     int
	RequireLower  bool
	RequireUpper  bool
	RequireDigit  bool
	RequireSymbol bool
}

// DefaultPasswordPolicy is the rule set enforced by the platform:
// at least eight characters including one digit.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:    8,
	RequireDigit: true,
}

// PolicyError names the first rule a password broke.
type PolicyError struct {
	Reason  string
	Message string
}

func (e *PolicyError) Error() string { return e.Message }

// Check returns the first violated rule, or nil when the password is acceptable.
//
// Rules are evaluated in a fixed order: empty, too short, too long, missing lowercase,
// missing uppercase, missing digit, missing symbol.
func (policy PasswordPolicy) Check(password string) *PolicyError {
	if password == "" {
		return &PolicyError{Reason: ReasonEmpty, Message: "Password is required"}
	}

	if len([]rune(password)) < policy.MinLength {
		return &PolicyError{
			Reason:  ReasonTooShort,
			Message: fmt.Sprintf("Password must be at least %d characters long", policy.MinLength),
		}
	}

	if len(password) > maxPasswordBytes {
		return &PolicyError{
			Reason:  ReasonTooLong,
			Message: fmt.Sprintf("Password must be at most %d bytes long", maxPasswordBytes),
		}
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	switch {
	case policy.RequireLower && !hasLower:
		return &PolicyError{Reason: ReasonMissingLower, Message: "Password must contain a lowercase letter"}
	case policy.RequireUpper && !hasUpper:
		return &PolicyError{Reason: ReasonMissingUpper, Message: "Password must contain an uppercase letter"}
	case policy.RequireDigit && !hasDigit:
		return &PolicyError{Reason: ReasonMissingDigit, Message: "Password must contain at least one number"}
	case policy.RequireSymbol && !hasSymbol:
		return &PolicyError{Reason: ReasonMissingSymbol, Message: "Password must contain a symbol"}
	}

	return nil
}
