package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeInvalidCredentials is used for failed login attempts
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeTimeOverlap is used when a time entry overlaps an existing one
	ErrCodeTimeOverlap = "ERR_TIME_OVERLAP"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodePayloadTooLarge is used when an upload exceeds the size limit
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeTimeOverlap:   http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized codes
// used on the wire
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"NOTE_NOT_FOUND":           ErrCodeNotFound,
	"CATEGORY_NOT_FOUND":       ErrCodeNotFound,
	"TIME_ENTRY_NOT_FOUND":     ErrCodeNotFound,
	"USER_NOT_FOUND":           ErrCodeNotFound,
	"IMAGE_NOT_FOUND":          ErrCodeNotFound,
	"COLLABORATOR_NOT_FOUND":   ErrCodeNotFound,
	"FRIEND_REQUEST_NOT_FOUND": ErrCodeNotFound,

	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"CATEGORY_EXISTS":       ErrCodeConflict,
	"FRIEND_REQUEST_EXISTS": ErrCodeConflict,
	"ALREADY_COLLABORATOR":  ErrCodeConflict,
	"EMAIL_TAKEN":           ErrCodeConflict,
	"USERNAME_TAKEN":        ErrCodeConflict,
	"TIME_OVERLAP":          ErrCodeTimeOverlap,

	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"INVALID_CREDENTIALS":   ErrCodeInvalidCredentials,
	"INVALID_REFRESH_TOKEN": ErrCodeTokenInvalid,
	"FORBIDDEN":             ErrCodeForbidden,
	"NOT_FRIENDS":           ErrCodeForbidden,
	"CANNOT_REMOVE_OWNER":   ErrCodeForbidden,

	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConflict,

	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_NOTE":            ErrCodeInvalidInput,
	"INVALID_USER":            ErrCodeInvalidInput,
	"INVALID_CATEGORY":        ErrCodeInvalidInput,
	"INVALID_CATEGORY_NAME":   ErrCodeInvalidInput,
	"INVALID_COLOR":           ErrCodeInvalidInput,
	"INVALID_TITLE":           ErrCodeInvalidInput,
	"INVALID_INTERVAL":        ErrCodeInvalidInput,
	"INVALID_RANGE":           ErrCodeInvalidInput,
	"INVALID_NAME":            ErrCodeInvalidInput,
	"INVALID_EMAIL":           ErrCodeInvalidInput,
	"INVALID_PASSWORD":        ErrCodeInvalidInput,
	"INVALID_USERNAME":        ErrCodeInvalidInput,
	"INVALID_PHONE":           ErrCodeInvalidInput,
	"INVALID_IMAGE":           ErrCodeInvalidInput,
	"INVALID_MESSAGE":         ErrCodeInvalidInput,
	"INVALID_IDENTIFIER":      ErrCodeInvalidInput,
	"INVALID_STATUS":          ErrCodeInvalidInput,
	"INVALID_FRIENDSHIP":      ErrCodeInvalidInput,
	"INVALID_COLLABORATOR":    ErrCodeInvalidInput,
	"DISALLOWED_CONTENT_TYPE": ErrCodeInvalidInput,
	"IMAGE_TOO_LARGE":         ErrCodePayloadTooLarge,

	"UPLOAD_FAILED":           ErrCodeInternal,
	"UPLOAD_URL_FAILED":       ErrCodeInternal,
	"STORAGE_CHECK_FAILED":    ErrCodeInternal,
	"TOKEN_GENERATION_FAILED": ErrCodeInternal,
	"LOGOUT_FAILED":           ErrCodeInternal,
	"PASSWORD_HASH_ERROR":     ErrCodeInternal,
	"INTERNAL_ERROR":          ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
