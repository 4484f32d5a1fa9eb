package apperr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lmsforge/lms-backend/internal/apperr"
)

func TestKinds(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", apperr.Validation("bad"), apperr.ErrValidation},
		{"not found", apperr.NotFound("missing"), apperr.ErrNotFound},
		{"forbidden", apperr.Forbidden("nope"), apperr.ErrForbidden},
		{"conflict", apperr.Conflict("dup"), apperr.ErrConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)

			assert.ErrorIs(t, wrapped, tc.kind)
			assert.ErrorIs(t, wrapped, tc.err)

			msg, ok := apperr.Message(wrapped)
			assert.True(t, ok)
			assert.Equal(t, tc.err.Error(), msg)
		})
	}
}

func TestMessageOfPlainError(t *testing.T) {
	_, ok := apperr.Message(fmt.Errorf("plain"))
	assert.False(t, ok)
}
