package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the caller: whether it is worth retrying,
// whether the user needs to sign in again, or whether the input was bad.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthorization
	KindAuthentication
	KindNetwork
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindAuthorization:
		return "AUTHORIZATION"
	case KindAuthentication:
		return "AUTHENTICATION"
	case KindNetwork:
		return "NETWORK"
	case KindConflict:
		return "CONFLICT"
	default:
		return "UNKNOWN"
	}
}

// Error carries a classified failure with a message fit for display.
// Code holds the raw backend error code, if any; it is kept for adapters
// that translate backend responses and never appears in Error().
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Retryable reports whether the failure is transient. Only network
// failures qualify; validation and authorization failures are terminal.
func Retryable(err error) bool {
	return KindOf(err) == KindNetwork
}

// CodeOf returns the backend error code of the first *Error in err's
// chain, or "" if there is none.
func CodeOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}
