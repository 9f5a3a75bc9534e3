package apperr

import "errors"

// Sentinel kinds the transport layer maps to HTTP statuses.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// Error pairs a sentinel kind with a client-facing message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func Validation(msg string) error {
	return &Error{kind: ErrValidation, msg: msg}
}

func Unauthenticated(msg string) error {
	return &Error{kind: ErrUnauthenticated, msg: msg}
}

func Forbidden(msg string) error {
	return &Error{kind: ErrForbidden, msg: msg}
}

func NotFound(msg string) error {
	return &Error{kind: ErrNotFound, msg: msg}
}
