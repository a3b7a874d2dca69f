package errors

import (
	"net/http"
	"testing"

	"bizdir/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_IsMatchesDerivedCopies(t *testing.T) {
	t.Parallel()

	custom := ErrInvalidRequest.WithMessage("Limit must be a positive integer")

	assert.Equal(t, "Limit must be a positive integer", custom.Error())
	assert.Equal(t, http.StatusBadRequest, custom.HTTPCode())
	assert.True(t, errors.Is(custom, ErrInvalidRequest))
	assert.True(t, errors.Is(custom.WithDetails("page=0"), ErrInvalidRequest))
	assert.False(t, errors.Is(custom, ErrBusinessNotFound))

	wrapped := errors.Wrap(custom, "list businesses")
	assert.True(t, errors.Is(wrapped, ErrInvalidRequest))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	v := NewValidationError()
	assert.True(t, v.Empty())
	assert.NoError(t, v.OrNil())

	v.Add("Business name is required")
	v.Add("Please add a valid email")

	err := v.OrNil()
	require.Error(t, err)

	var target *ValidationError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, []string{"Business name is required", "Please add a valid email"}, target.Messages())
	assert.Equal(t, http.StatusBadRequest, target.HTTPCode())

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
}

func TestDatabaseExecuteError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "insert business")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "Server Error", err.Message())
	assert.True(t, errors.Is(err, cause))
}
