// Package apperror defines the error kinds surfaced to API callers.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range input, including business rule
	// violations such as insufficient stock or a duplicate email.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
)

// Error is a client-facing error. Message is safe to return in a response body.
type Error struct {
	Kind    error
	Field   string
	Message string
}

// Error returns the message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the kind sentinel to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Validation returns an ErrValidation error naming the offending field.
func Validation(field, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    ErrValidation,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFound returns an ErrNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is (or wraps) a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is (or wraps) a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// FieldOf returns the field named by a validation error, or "" when err carries none.
func FieldOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
