package jwtauth

import (
	"fmt"
	"strings"
)

// ErrorCode represents a validation error code
type ErrorCode string

const (
	ErrMissingToken     ErrorCode = "MISSING_TOKEN"
	ErrMalformed        ErrorCode = "MALFORMED"
	ErrInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	ErrExpired          ErrorCode = "EXPIRED"
	ErrNotYetValid      ErrorCode = "NOT_YET_VALID"
	ErrInvalidIssuer    ErrorCode = "INVALID_ISSUER"
	ErrInvalidAudience  ErrorCode = "INVALID_AUDIENCE"
	ErrInvalidClaims    ErrorCode = "INVALID_CLAIMS"
	ErrConfigError      ErrorCode = "CONFIG_ERROR"
	ErrForbidden        ErrorCode = "FORBIDDEN"
)

// ValidationError represents a token validation error with a code and message.
// It never leaves the package through Decode; callers only see the absent result.
type ValidationError struct {
	Code     ErrorCode
	Message  string
	Internal error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *ValidationError) Unwrap() error {
	return e.Internal
}

// NewValidationError creates a new validation error
func NewValidationError(code ErrorCode, message string, internal error) *ValidationError {
	return &ValidationError{
		Code:     code,
		Message:  message,
		Internal: internal,
	}
}

// ScopeMode names the rule a ForbiddenError was produced by.
type ScopeMode string

const (
	ScopeModeAll ScopeMode = "all"
	ScopeModeAny ScopeMode = "any"
)

// ForbiddenError is returned by the scope guards. It carries enough
// information to tell the caller what was needed without exposing the token.
type ForbiddenError struct {
	Mode     ScopeMode
	Required []string // required (all) or accepted (any) scopes
	Granted  []string
	Missing  []string // only set for ScopeModeAll
}

func (e *ForbiddenError) Error() string {
	granted := "none"
	if len(e.Granted) > 0 {
		granted = strings.Join(e.Granted, ", ")
	}

	if e.Mode == ScopeModeAny {
		return fmt.Sprintf("one of the scopes [%s] is required, token grants [%s]",
			strings.Join(e.Required, ", "), granted)
	}
	return fmt.Sprintf("scopes [%s] are required, token grants [%s] (missing: %s)",
		strings.Join(e.Required, ", "), granted, strings.Join(e.Missing, ", "))
}

// Code reports ErrForbidden so scope failures log like validation failures.
func (e *ForbiddenError) Code() ErrorCode {
	return ErrForbidden
}
