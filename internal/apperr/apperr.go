// Package apperr classifies service errors so the http layer can map them to status codes.
package apperr

import "errors"

var (
	// ErrValidation marks input the service refuses to process.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a caller lacking the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a duplicate or a state that does not allow the operation.
	ErrConflict = errors.New("conflict")
)

// Error is a classified error carrying a client facing message.
type Error struct {
	kind error
	msg  string
}

// Error returns the client facing message.
func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind for errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// Validation returns a validation error with msg.
func Validation(msg string) error { return &Error{kind: ErrValidation, msg: msg} }

// NotFound returns a not-found error with msg.
func NotFound(msg string) error { return &Error{kind: ErrNotFound, msg: msg} }

// Forbidden returns an authorization error with msg.
func Forbidden(msg string) error { return &Error{kind: ErrForbidden, msg: msg} }

// Conflict returns a conflict error with msg.
func Conflict(msg string) error { return &Error{kind: ErrConflict, msg: msg} }

// Message returns the client facing message of a classified error and false otherwise.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.msg, true
	}

	return "", false
}
