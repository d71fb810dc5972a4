package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"not found", NewResourceNotFoundError("Product not found."), ErrResourceNotFound},
		{"conflict", NewConflictError("Username already exists"), ErrConflict},
		{"forbidden", NewForbiddenError("nope"), ErrPermissionDenied},
		{"bad request", NewBadRequestError("Content is required."), ErrValidationFailed},
		{"unauthorized", NewUnauthorizedError("Invalid credentials"), ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.kind))

			wrapped := fmt.Errorf("service: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.kind))
			assert.Equal(t, tt.err.Error(), Message(wrapped))
		})
	}
}

func TestDomainErrorsKeepMessages(t *testing.T) {
	assert.Equal(t, "Invalid university selection", ErrInvalidUniversity.Error())
	assert.True(t, errors.Is(ErrInvalidCourse, ErrResourceNotFound))
	assert.True(t, errors.Is(ErrEmailExists, ErrConflict))
	assert.True(t, errors.Is(ErrOTPAlreadyUsed, ErrConflict))
	assert.True(t, Is(ErrNoMessages, ErrConflict, ErrResourceNotFound))
}

func TestMessageWithoutCustomError(t *testing.T) {
	assert.Equal(t, "", Message(errors.New("plain")))

	ce := NewCustomError(ErrConflict, "")
	assert.Equal(t, "conflict", ce.Error())
}
