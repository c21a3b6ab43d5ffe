package services

import "errors"

// Domain error kinds. Handlers map each kind to an HTTP status; anything that
// does not wrap one of these is treated as an internal error.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrAlreadyExists   = errors.New("already exists")
)

// Error carries a client-facing message alongside its kind.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

func notFound(message string) error        { return &Error{kind: ErrNotFound, message: message} }
func invalidArgument(message string) error { return &Error{kind: ErrInvalidArgument, message: message} }
func forbidden(message string) error       { return &Error{kind: ErrForbidden, message: message} }
func invalidState(message string) error    { return &Error{kind: ErrInvalidState, message: message} }
func alreadyExists(message string) error   { return &Error{kind: ErrAlreadyExists, message: message} }
