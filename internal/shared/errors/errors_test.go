package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// AppError Tests
// ============================================================================

func TestValidationError(t *testing.T) {
	t.Run("carries message, status and details", func(t *testing.T) {
		err := NewValidationError("Validation failed", "port must be greater than 0")

		assert.Equal(t, ErrorTypeValidation, err.Type)
		assert.Equal(t, http.StatusBadRequest, err.Code)
		assert.Contains(t, err.Error(), "Validation failed")
		assert.Contains(t, err.Error(), "port must be greater than 0")
	})

	t.Run("details are optional", func(t *testing.T) {
		err := NewValidationError("Validation failed")

		assert.Empty(t, err.Details)
		assert.Equal(t, "validation_error: Validation failed", err.Error())
	})
}

func TestGetAppError(t *testing.T) {
	t.Run("extracted through a wrapped chain", func(t *testing.T) {
		wrapped := fmt.Errorf("invalid configuration: %w",
			NewValidationError("Validation failed", "database.host is required"))

		appErr := GetAppError(wrapped)
		assert.NotNil(t, appErr)
		assert.Equal(t, "database.host is required", appErr.Details)
	})

	t.Run("nil for plain errors", func(t *testing.T) {
		assert.Nil(t, GetAppError(errors.New("boom")))
		assert.Nil(t, GetAppError(nil))
	})
}
