package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTransientError_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransientError("failed to load profile", cause)

	assert.True(t, IsTransient(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to load profile")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewCommitFailedError(t *testing.T) {
	cause := errors.New("tx aborted")
	err := NewCommitFailedError("commit 2024", cause)

	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsTransient(err))
}

func TestAppError_WithoutCause(t *testing.T) {
	err := &AppError{Code: 500, Message: "boom"}
	assert.Equal(t, "boom", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestSentinelHelpers(t *testing.T) {
	var appErr *AppError

	nf := NewNotFoundError("period report not found")
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.True(t, errors.As(nf, &appErr))
	assert.Equal(t, 404, appErr.Code)

	vf := NewValidationFailedError("bizName is required")
	assert.ErrorIs(t, vf, ErrValidation)
}
