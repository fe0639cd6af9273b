package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomainError(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeNotFound, "resource not found", baseErr)

	assert.Equal(t, ErrorTypeNotFound, domainErr.Type)
	assert.Equal(t, "resource not found", domainErr.Message)
	assert.Equal(t, baseErr, domainErr.Err)
	assert.NotNil(t, domainErr.Details)
}

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *DomainError
		wantMsg string
	}{
		{
			name: "error with wrapped error",
			err: &DomainError{
				Type:    ErrorTypeNotFound,
				Message: "user not found",
				Err:     errors.New("db error"),
			},
			wantMsg: "not_found: user not found (db error)",
		},
		{
			name: "error without wrapped error",
			err: &DomainError{
				Type:    ErrorTypeValidation,
				Message: "invalid input",
				Err:     nil,
			},
			wantMsg: "validation: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeInternal, "internal error", baseErr)

	unwrapped := errors.Unwrap(domainErr)
	assert.Equal(t, baseErr, unwrapped)
}

func TestDomainError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "same error type",
			err:    ErrJobNotFound.WithMessage("No job: 7"),
			target: NewDomainError(ErrorTypeNotFound, "not found", nil),
			want:   true,
		},
		{
			name:   "uncoded error does not match a coded target",
			err:    NewDomainError(ErrorTypeNotFound, "not found", nil),
			target: ErrJobNotFound,
			want:   false,
		},
		{
			name:   "job not found is not company not found",
			err:    ErrJobNotFound.WithMessage("No job: 7"),
			target: ErrCompanyNotFound,
			want:   false,
		},
		{
			name:   "user not found is not job not found",
			err:    ErrUserNotFound,
			target: ErrJobNotFound,
			want:   false,
		},
		{
			name:   "duplicate apply is not duplicate username",
			err:    ErrDuplicateApply,
			target: ErrDuplicateUsername,
			want:   false,
		},
		{
			name:   "duplicate company keeps its code through WithMessage",
			err:    ErrDuplicateCompany.WithMessage("Duplicate company: c1"),
			target: ErrDuplicateCompany,
			want:   true,
		},
		{
			name:   "different error type",
			err:    NewDomainError(ErrorTypeValidation, "validation", nil),
			target: ErrJobNotFound,
			want:   false,
		},
		{
			name:   "same code",
			err:    ErrInvalidRange.WithMessage("minEmployees cannot exceed maxEmployees"),
			target: ErrInvalidRange,
			want:   true,
		},
		{
			name:   "same type different code",
			err:    ErrInvalidRange,
			target: ErrEmptyUpdate,
			want:   false,
		},
		{
			name:   "coded error matches uncoded target of same type",
			err:    ErrEmptyUpdate,
			target: ErrInvalidInput,
			want:   true,
		},
		{
			name:   "invalid token is not a plain credentials failure",
			err:    ErrInvalidToken,
			target: ErrInvalidCredentials,
			want:   false,
		},
		{
			name:   "wrapped coded error",
			err:    fmt.Errorf("building filter: %w", ErrInvalidType),
			target: ErrInvalidType,
			want:   true,
		},
		{
			name:   "not a domain error",
			err:    NewDomainError(ErrorTypeNotFound, "not found", nil),
			target: errors.New("regular error"),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestDomainError_WithDetail(t *testing.T) {
	err := ErrUnrecognizedFilterKey.WithDetail("key", "cats").WithDetail("domain", "jobs")

	assert.Equal(t, "cats", err.Details["key"])
	assert.Equal(t, "jobs", err.Details["domain"])
	assert.Empty(t, ErrUnrecognizedFilterKey.Details, "sentinel must not be mutated")
	assert.True(t, errors.Is(err, ErrUnrecognizedFilterKey))
}

func TestDomainError_WithMessage(t *testing.T) {
	err := ErrJobNotFound.WithMessage("No job: 7")

	assert.Equal(t, "No job: 7", err.Message)
	assert.Equal(t, "job not found", ErrJobNotFound.Message)
	assert.True(t, IsNotFoundError(err))
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found error", ErrCompanyNotFound, true},
		{"wrapped not found", fmt.Errorf("wrapped: %w", ErrUserNotFound), true},
		{"job not found", ErrJobNotFound.WithMessage("No job: 7"), true},
		{"validation error", ErrInvalidInput, false},
		{"regular error", errors.New("regular"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFoundError(tt.err))
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation error", ErrInvalidInput, true},
		{"empty update", ErrEmptyUpdate, true},
		{"wrapped range error", fmt.Errorf("wrapped: %w", ErrInvalidRange), true},
		{"not found error", ErrJobNotFound, false},
		{"regular error", errors.New("regular"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidationError(tt.err))
		})
	}
}

func TestIsUnauthorizedError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unauthorized error", ErrUnauthorized, true},
		{"invalid token", ErrInvalidToken, true},
		{"invalid credentials", ErrInvalidCredentials, true},
		{"validation error", ErrInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnauthorizedError(tt.err))
		})
	}
}

func TestIsConflictError(t *testing.T) {
	assert.True(t, IsConflictError(ErrDuplicateUsername))
	assert.True(t, IsConflictError(fmt.Errorf("create: %w", ErrDuplicateCompany)))
	assert.False(t, IsConflictError(ErrInternal))
}

func TestIsInternalError(t *testing.T) {
	assert.True(t, IsInternalError(WrapInternal("failed to query jobs", errors.New("conn reset"))))
	assert.False(t, IsInternalError(ErrUnauthorized))
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, ErrorTypeConflict, GetErrorType(ErrDuplicateApply))
	assert.Equal(t, ErrorType(""), GetErrorType(errors.New("plain")))
}

func TestGetErrorDetails(t *testing.T) {
	err := ErrInvalidType.WithDetail("key", "minSalary")
	details := GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "minSalary", details["key"])

	assert.Nil(t, GetErrorDetails(ErrInvalidType))
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}

func TestPublicMessage(t *testing.T) {
	wrapped := WrapInternal("failed to get job", errors.New("pq: password authentication failed"))

	assert.Equal(t, "failed to get job", PublicMessage(wrapped))
	assert.NotContains(t, PublicMessage(wrapped), "password")
	assert.Equal(t, "An unexpected error occurred", PublicMessage(errors.New("boom")))
}
