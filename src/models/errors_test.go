package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("wraps cause", func(t *testing.T) {
		err := NewValidationError("invalid strategy", ErrNoLegs)

		assert.Equal(t, "invalid strategy: strategy must have at least one leg", err.Error())
		assert.ErrorIs(t, err, ErrNoLegs)
	})

	t.Run("without cause", func(t *testing.T) {
		err := NewValidationError("missing deal id", nil)

		assert.Equal(t, "missing deal id", err.Error())
	})
}

func TestAuthorizationError(t *testing.T) {
	err := NewAuthorizationError("list 7 not owned by user abc")

	assert.Equal(t, "list 7 not owned by user abc", err.Error())

	var authErr *AuthorizationError
	assert.ErrorAs(t, fmt.Errorf("Attach: %w", err), &authErr)
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPersistenceError("Watch: transaction failed", cause)

	assert.Equal(t, "Watch: transaction failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}
