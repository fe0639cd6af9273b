package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeInternal     ErrorType = "internal"
)

// Error codes narrow an ErrorType down to one specific failure.
const (
	CodeEmptyUpdate           = "empty_update"
	CodeInvalidRange          = "invalid_range"
	CodeInvalidType           = "invalid_type"
	CodeUnrecognizedFilterKey = "unrecognized_filter_key"
	CodeInvalidToken          = "invalid_token"
	CodeInvalidCredentials    = "invalid_credentials"
	CodeCompanyNotFound       = "company_not_found"
	CodeJobNotFound           = "job_not_found"
	CodeUserNotFound          = "user_not_found"
	CodeDuplicateCompany      = "duplicate_company"
	CodeDuplicateUsername     = "duplicate_username"
	CodeDuplicateApply        = "duplicate_apply"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Code    string
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is. Errors match on Type; a target carrying a Code
// additionally requires the same Code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if e.Type != t.Type {
		return false
	}
	return t.Code == "" || e.Code == t.Code
}

// WithDetail returns a copy of the error with the detail added.
// Sentinels are shared, so they are never mutated in place.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	cp := e.clone()
	cp.Details[key] = value
	return cp
}

// WithMessage returns a copy of the error carrying a more specific message
func (e *DomainError) WithMessage(message string) *DomainError {
	cp := e.clone()
	cp.Message = message
	return cp
}

func (e *DomainError) clone() *DomainError {
	cp := *e
	cp.Details = make(map[string]interface{}, len(e.Details))
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	return &cp
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// newCodedError creates a sentinel that errors.Is can tell apart from
// other errors of the same type
func newCodedError(errType ErrorType, code, message string) *DomainError {
	e := NewDomainError(errType, message, nil)
	e.Code = code
	return e
}

// Domain error variables

var (
	// Not Found Errors
	ErrCompanyNotFound = newCodedError(ErrorTypeNotFound, CodeCompanyNotFound, "company not found")
	ErrJobNotFound     = newCodedError(ErrorTypeNotFound, CodeJobNotFound, "job not found")
	ErrUserNotFound    = newCodedError(ErrorTypeNotFound, CodeUserNotFound, "user not found")

	// Validation Errors
	ErrInvalidInput          = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrEmptyUpdate           = newCodedError(ErrorTypeValidation, CodeEmptyUpdate, "no data")
	ErrInvalidRange          = newCodedError(ErrorTypeValidation, CodeInvalidRange, "lower bound cannot exceed upper bound")
	ErrInvalidType           = newCodedError(ErrorTypeValidation, CodeInvalidType, "bound must be a number")
	ErrUnrecognizedFilterKey = newCodedError(ErrorTypeValidation, CodeUnrecognizedFilterKey, "unrecognized filter")

	// Authorization Errors
	ErrUnauthorized       = NewDomainError(ErrorTypeUnauthorized, "unauthorized", nil)
	ErrInvalidToken       = newCodedError(ErrorTypeUnauthorized, CodeInvalidToken, "invalid authentication token")
	ErrInvalidCredentials = newCodedError(ErrorTypeUnauthorized, CodeInvalidCredentials, "invalid username/password")

	// Conflict Errors
	ErrDuplicateCompany  = newCodedError(ErrorTypeConflict, CodeDuplicateCompany, "company already exists")
	ErrDuplicateUsername = newCodedError(ErrorTypeConflict, CodeDuplicateUsername, "username already exists")
	ErrDuplicateApply    = newCodedError(ErrorTypeConflict, CodeDuplicateApply, "already applied to job")

	// Internal Errors
	ErrInternal          = NewDomainError(ErrorTypeInternal, "internal server error", nil)
	ErrDatabaseError     = NewDomainError(ErrorTypeInternal, "database error", nil)
	ErrTransactionFailed = NewDomainError(ErrorTypeInternal, "transaction failed", nil)
)

// Error type checking helper functions

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return GetErrorType(err) == ErrorTypeNotFound
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return GetErrorType(err) == ErrorTypeValidation
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return GetErrorType(err) == ErrorTypeUnauthorized
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	return GetErrorType(err) == ErrorTypeConflict
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return GetErrorType(err) == ErrorTypeInternal
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) && len(domainErr.Details) > 0 {
		return domainErr.Details
	}
	return nil
}

// PublicMessage returns the message that is safe to show to API clients.
// Wrapped causes are never included.
func PublicMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "An unexpected error occurred"
}

// WrapError wraps an error with additional context
func WrapError(errType ErrorType, message string, err error) error {
	return NewDomainError(errType, message, err)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
