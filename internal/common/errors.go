package common

import (
	"errors"
	"strings"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Content errors
	ErrPostNotFound    = errors.New("post not found")
	ErrVersionNotFound = errors.New("version not found")

	// Workflow errors
	ErrUnauthorizedTransition = errors.New("actor is not permitted to perform this transition")
	ErrInvalidState           = errors.New("version is not in a state that allows this operation")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports unmet gating requirements (e.g. approval or
// publish preconditions). Missing holds one human-readable string per
// unmet requirement.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Missing, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
