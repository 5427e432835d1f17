package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound        = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation      = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal        = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrTooManyRequests = New("TOO_MANY_REQUESTS", http.StatusTooManyRequests, "too many requests")

	// ErrMissingFilters is returned when a search omits week_day, subject or time.
	ErrMissingFilters = New("MISSING_FILTERS", http.StatusBadRequest, "Missing filters search classes")
	// ErrInvalidFilters is returned when search filters are present but malformed.
	ErrInvalidFilters = New("INVALID_FILTERS", http.StatusBadRequest, "Invalid filters search classes")
	// ErrInvalidClassPayload rejects a registration before any write happens.
	// Legacy clients only see the generic creation message; the code tells them apart.
	ErrInvalidClassPayload = New("INVALID_CLASS_PAYLOAD", http.StatusBadRequest, "Unexpected error while creating a new class")
	// ErrClassCreation hides the cause of a failed registration transaction.
	ErrClassCreation = New("CLASS_CREATION_FAILED", http.StatusBadRequest, "Unexpected error while creating a new class")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
