package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidReference, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeEmptyCart, http.StatusUnprocessableEntity},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodePersistence, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"ERR_NEVER_HEARD_OF", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeEmptyCart, NormalizeErrorCode("EMPTY_CART"))
	assert.Equal(t, ErrCodeInvalidReference, NormalizeErrorCode("INVALID_REFERENCE"))
	assert.Equal(t, ErrCodePersistence, NormalizeErrorCode("PERSISTENCE_FAILURE"))
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode(ErrCodeValidation))
	assert.Equal(t, "SOMETHING_ELSE", NormalizeErrorCode("SOMETHING_ELSE"))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", map[string]string{
		"email": "Email is required",
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, "Email is required", resp.Error.Fields["email"])
}
