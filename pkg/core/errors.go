package core

import (
	"errors"
	"fmt"
)

// Error kinds surfaced at the navigation and drawing boundary. Parsing, layout and
// painting never fail.
var (
	ErrUnexpectedInput = errors.New("unexpected input")
	ErrNetwork         = errors.New("network error")
	ErrInvalidUI       = errors.New("invalid ui")
)

// Error carries a kind, a message and an optional cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

// Error returns the kind followed by the message. The message already includes the
// cause's text when one was wrapped.
func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates an error of the given kind. A %w verb in format wraps the cause
// the same way fmt.Errorf does.
func Errorf(kind error, format string, args ...interface{}) error {
	wrapped := fmt.Errorf(format, args...)
	return &Error{
		Kind: kind,
		Msg:  wrapped.Error(),
		Err:  errors.Unwrap(wrapped),
	}
}
