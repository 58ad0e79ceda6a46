package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Message       string `json:"message"`
	Code          string `json:"code,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeDuplicateBarcode   = "DUPLICATE_BARCODE"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeFlyerNotFound      = "FLYER_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeRouteNotFound      = "ROUTE_NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports malformed input.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// IsValidationError reports whether err carries the validation code.
func IsValidationError(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == ErrCodeValidation
}

// Common domain errors
var (
	ErrUnauthenticated    = NewDomainError(ErrCodeUnauthenticated, "No token, authorization denied")
	ErrInvalidToken       = NewDomainError(ErrCodeInvalidToken, "Token is not valid")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "User already exists")
	ErrDuplicateBarcode   = NewDomainError(ErrCodeDuplicateBarcode, "Barcode already exists for this user")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrFlyerNotFound      = NewDomainError(ErrCodeFlyerNotFound, "Flyer not found")
	ErrUserNotFound       = NewDomainError(ErrCodeUserNotFound, "User not found")
)
