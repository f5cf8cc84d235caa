package nexora_errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatchesInvalidInput(t *testing.T) {
	err := fmt.Errorf("register: %w", NewValidationError("email", "Email is required"))

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrStorage)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
	assert.Equal(t, "Email is required", err.Error()[len("register: "):])
}

func TestStorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("append chat", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "append chat: disk full", err.Error())
}
