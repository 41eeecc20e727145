package wizard

import "errors"

// ErrorKind classifies wizard errors
type ErrorKind int

const (
	// KindValidation errors are raised locally before any backend call
	KindValidation ErrorKind = iota + 1
	// KindService errors wrap a failed backend call
	KindService
)

// Error is a user-facing wizard error. Message is shown verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNoBusinessOwner is the cause recorded when a step needs an owner id that was never created
var ErrNoBusinessOwner = errors.New("no business owner in session")

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func serviceError(msg string, err error) *Error {
	return &Error{Kind: KindService, Message: msg, Err: err}
}

// IsValidation reports whether err is a local validation failure
func IsValidation(err error) bool {
	var we *Error
	return errors.As(err, &we) && we.Kind == KindValidation
}
