package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatValidation ErrorCategory = "validation" // Invalid input
	ErrCatNotFound   ErrorCategory = "not_found"  // Resource not found
	ErrCatConflict   ErrorCategory = "conflict"   // Concurrent modification
	ErrCatState      ErrorCategory = "state"      // State corruption/conflict
	ErrCatInternal   ErrorCategory = "internal"   // Unexpected internal error
)

// DomainError represents a structured error from the domain layer.
type DomainError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
	Details  map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ErrValidation creates a validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatValidation,
		Code:     code,
		Message:  message,
	}
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) *DomainError {
	return &DomainError{
		Category: ErrCatNotFound,
		Code:     CodeNotFound,
		Message:  fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrConflict creates a conflict error.
func ErrConflict(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatConflict,
		Code:     code,
		Message:  message,
	}
}

// ErrState creates a state error.
func ErrState(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatState,
		Code:     code,
		Message:  message,
	}
}

// ErrInternal creates an internal error.
func ErrInternal(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatInternal,
		Code:     code,
		Message:  message,
	}
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}

// Predefined error codes
const (
	CodeNotFound      = "NOT_FOUND"
	CodeNoRenderer    = "NO_RENDERER"
	CodeDuplicateID   = "DUPLICATE_PANEL_ID"
	CodeEmptyID       = "EMPTY_PANEL_ID"
	CodeSortOrder     = "SORT_ORDER_NOT_DENSE"
	CodeContentType   = "UNKNOWN_CONTENT_TYPE"
	CodeNestedConfig  = "INVALID_NESTED_CONFIG"
	CodeParseFailed   = "PARSE_FAILED"
	CodeInvalidConfig = "INVALID_CONFIG"
	CodeInvalidIndex  = "INVALID_INDEX"
	CodeRenderFailed  = "RENDER_FAILED"
)
