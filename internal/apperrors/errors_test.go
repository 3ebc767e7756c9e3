package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/claims_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
		status   int
	}{
		{"not found", apperrors.NewNotFoundError("claim not found"), apperrors.ErrNotFound, http.StatusNotFound},
		{"unauthorized", apperrors.NewUnauthorizedError("not the claimant"), apperrors.ErrUnauthorized, http.StatusForbidden},
		{"business rule", apperrors.NewBusinessRuleError("claim is not pending"), apperrors.ErrBusinessRule, http.StatusUnprocessableEntity},
		{"validation", apperrors.NewValidationFailedError("bad view mode"), apperrors.ErrValidation, http.StatusBadRequest},
		{"conflict", apperrors.NewConflictError("email taken"), apperrors.ErrDuplicate, http.StatusConflict},
		{"internal", apperrors.NewAppError(500, "boom", errors.New("db down")), apperrors.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)
			assert.Equal(t, tc.status, apperrors.StatusCode(wrapped))
		})
	}
}

func TestAppErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(500, "failed to load claim", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load claim: connection reset", err.Error())
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStatusCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(errors.New("anything")))
}
