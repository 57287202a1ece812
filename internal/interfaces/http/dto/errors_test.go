package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeValidationRequired, http.StatusBadRequest},
		{ErrCodeValidationFormat, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeTokenInvalid, http.StatusUnauthorized},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeTimeOverlap, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeBusinessRule, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"NOTE_NOT_FOUND", ErrCodeNotFound},
		{"CATEGORY_NOT_FOUND", ErrCodeNotFound},
		{"USER_NOT_FOUND", ErrCodeNotFound},
		{"CATEGORY_EXISTS", ErrCodeConflict},
		{"EMAIL_TAKEN", ErrCodeConflict},
		{"TIME_OVERLAP", ErrCodeTimeOverlap},
		{"INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		{"NOT_FRIENDS", ErrCodeForbidden},
		{"CANNOT_REMOVE_OWNER", ErrCodeForbidden},
		{"INVALID_COLOR", ErrCodeInvalidInput},
		{"INVALID_MESSAGE", ErrCodeInvalidInput},
		{"IMAGE_TOO_LARGE", ErrCodePayloadTooLarge},
		{"UPLOAD_FAILED", ErrCodeInternal},
		// Codes already in wire format pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		// Unknown codes pass through unchanged
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestGetHTTPStatusConsistency(t *testing.T) {
	// Every normalized code produced by the mapping must have a status entry
	for domainCode, wireCode := range DomainErrorCodeMapping {
		t.Run(domainCode, func(t *testing.T) {
			_, ok := ErrorCodeHTTPStatus[wireCode]
			assert.True(t, ok, "wire code %s has no HTTP status", wireCode)
		})
	}
}
