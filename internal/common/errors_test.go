package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_WithDetails_DoesNotMutateSentinel(t *testing.T) {
	withDetails := ErrNotFound.WithDetails("Listing not found.")

	assert.Equal(t, "Listing not found.", withDetails.Details)
	assert.Nil(t, ErrNotFound.Details)
	assert.Equal(t, http.StatusNotFound, withDetails.StatusCode)
}

func TestAPIError_Is_MatchesWrappedCopies(t *testing.T) {
	err := fmt.Errorf("lookup: %w", ErrNotFound.WithDetails("x"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestIsAPIError(t *testing.T) {
	apiErr, ok := IsAPIError(fmt.Errorf("wrap: %w", ErrInvalidTransition))
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	_, ok = IsAPIError(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationAPIError(map[string]string{"destination": "required"})))
	assert.False(t, IsValidationError(ErrBadRequest))
	assert.False(t, IsValidationError(nil))
}
