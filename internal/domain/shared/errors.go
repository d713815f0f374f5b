package shared

import "fmt"

// DomainError represents a business rule violation
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common error codes
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeProductUnavailable  = "PRODUCT_UNAVAILABLE"
	ErrCodeInsufficientStock   = "INSUFFICIENT_STOCK"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(ErrCodeNotFound, "resource not found")
	ErrUnauthorized        = NewDomainError(ErrCodeUnauthorized, "unauthorized")
	ErrForbidden           = NewDomainError(ErrCodeForbidden, "forbidden")
	ErrConcurrencyConflict = NewDomainError(ErrCodeConcurrencyConflict, "resource was modified concurrently")
)

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NewNotFoundError creates a not found error for the given resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

// NewAlreadyExistsError creates an already exists error for the given resource
func NewAlreadyExistsError(resource string) *DomainError {
	return NewDomainError(ErrCodeAlreadyExists, fmt.Sprintf("%s already exists", resource))
}
