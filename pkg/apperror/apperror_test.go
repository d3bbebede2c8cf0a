package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeInternalError, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestCodeOfWrapped(t *testing.T) {
	err := fmt.Errorf("service: %w", Conflict("Friend request already exists"))
	assert.Equal(t, ErrCodeConflict, CodeOf(err))
	assert.Equal(t, ErrCodeInternalError, CodeOf(errors.New("boom")))
}

func TestPublicMessageHidesInternals(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"), "Error fetching friends")
	assert.Equal(t, "Internal server error", PublicMessage(err))
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, "You are already friends", PublicMessage(Conflict("You are already friends")))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
}
