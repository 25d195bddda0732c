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

// Is reports whether target carries the same code, so cloned and wrapped
// variants still match the predefined values with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
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
	ErrNotFound              = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden             = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized          = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict              = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation            = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal              = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrRateLimited           = New("RATE_LIMITED", http.StatusTooManyRequests, "too many requests")
	ErrCacheMiss             = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrInvalidInterval       = New("INVALID_INTERVAL", http.StatusBadRequest, "interval start must be before end")
	ErrMalformedTimeInput    = New("MALFORMED_TIME_INPUT", http.StatusUnprocessableEntity, "time must be HH:MM within 00:00-23:59")
	ErrRepositoryUnavailable = New("REPOSITORY_UNAVAILABLE", http.StatusServiceUnavailable, "scheduling data is temporarily unavailable")
	ErrNoAvailableSlot       = New("NO_AVAILABLE_SLOT", http.StatusOK, "no available slot within the search horizon")
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

// Unavailable wraps an infrastructure failure as a retryable repository error.
func Unavailable(err error, message string) *Error {
	if message == "" {
		message = ErrRepositoryUnavailable.Message
	}
	return Wrap(err, ErrRepositoryUnavailable.Code, ErrRepositoryUnavailable.Status, message)
}
