package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"usertags/backend/internal/errors"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := errors.AlreadyExistsf("tag %q already exists in group %d", "sunny", 1)

	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
	assert.False(t, errors.Is(err, errors.ErrNotFound))
	assert.Equal(t, `tag "sunny" already exists in group 1`, err.Error())
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("renaming tag: %w", errors.NotFoundf("user tag %d not found", 7))

	assert.True(t, errors.Is(err, errors.ErrNotFound))

	var domainErr *errors.Error
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, errors.CodeNotFound, domainErr.Code)
}

func TestError_WithCause(t *testing.T) {
	cause := fmt.Errorf("UNIQUE constraint failed")
	err := errors.ErrAlreadyExists.WithCause(cause)

	assert.Equal(t, "already exists: UNIQUE constraint failed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)
	assert.Nil(t, errors.ErrAlreadyExists.Unwrap(), "sentinel must not be mutated")
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := errors.Wrap(cause, errors.CodeInternal, "saving tag")

	assert.ErrorIs(t, err, errors.ErrInternal)
	assert.Equal(t, "saving tag: disk full", err.Error())
}

func TestValidationWithDetails(t *testing.T) {
	err := errors.ValidationWithDetails("user_tag: text is required", map[string]string{"text": "is required"})

	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Equal(t, "is required", err.Details["text"])
}
