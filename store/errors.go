package store

import "fmt"

// NotFoundError reports a lookup for an id that is not in the document.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

// NewNotFoundError builds a NotFoundError with a caller-facing message.
func NewNotFoundError(msg string) error {
	return &NotFoundError{msg: msg}
}

func notFoundf(format string, args ...interface{}) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports a rejected state transition or bad input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a ValidationError with a caller-facing message.
func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
