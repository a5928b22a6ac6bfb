package models

import "errors"

// ErrDuplicateSpread is returned by InsertSpread when the active-spread
// uniqueness constraint rejects the row. Callers treat it as a successful
// duplicate detection, not a failure.
var ErrDuplicateSpread = errors.New("duplicate active spread")

// ErrNoLegs rejects strategies with an empty leg list before they can
// produce an empty signature or a division-by-zero liquidity snapshot.
var ErrNoLegs = errors.New("strategy must have at least one leg")

// ErrSpreadNotFound is returned by both store implementations when an edit
// targets a spread id that does not exist.
var ErrSpreadNotFound = errors.New("spread not found")

type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{
		Message: message,
		Cause:   cause,
	}
}

type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{
		Message: message,
	}
}

type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func NewPersistenceError(message string, cause error) *PersistenceError {
	return &PersistenceError{
		Message: message,
		Cause:   cause,
	}
}
