package dto

import (
	"net/http"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Transport-level error codes not produced by the domain
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "INVALID_TOKEN"
	// ErrCodeTokenRevoked is used when the auth token has been revoked
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.ErrCodeValidation:         http.StatusBadRequest,
	shared.ErrCodeEmptyCart:          http.StatusBadRequest,
	shared.ErrCodeProductUnavailable: http.StatusBadRequest,

	shared.ErrCodeUnauthorized: http.StatusUnauthorized,
	shared.ErrCodeForbidden:    http.StatusForbidden,
	shared.ErrCodeNotFound:     http.StatusNotFound,

	shared.ErrCodeAlreadyExists:       http.StatusConflict,
	shared.ErrCodeInsufficientStock:   http.StatusConflict,
	shared.ErrCodeConcurrencyConflict: http.StatusConflict,

	shared.ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeTokenRevoked:    http.StatusUnauthorized,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
