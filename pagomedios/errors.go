package pagomedios

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure surfaced by this package. Callers
// are expected to switch on the kind to decide retry/UI behavior.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota + 1
	// KindToken marks an authentication rejection (HTTP 401 equivalent).
	KindToken
	// KindConnection marks a transport failure before any response arrived.
	KindConnection
	// KindStatus marks an unexpected HTTP-level status.
	KindStatus
	// KindBody marks a request payload rejected by the provider.
	KindBody
	// KindIDRequest marks a lookup whose identifier matched no payment.
	KindIDRequest
	// KindTaxIncorrect marks a tax rate the provider does not accept.
	KindTaxIncorrect
	// KindPathIncorrect marks a response that did not parse as the
	// expected JSON shape, most often because the endpoint path is wrong.
	KindPathIncorrect
	// KindNotFound marks a generic 404 on record-oriented endpoints.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindToken:
		return "token"
	case KindConnection:
		return "connection"
	case KindStatus:
		return "status"
	case KindBody:
		return "body"
	case KindIDRequest:
		return "id-request"
	case KindTaxIncorrect:
		return "tax-incorrect"
	case KindPathIncorrect:
		return "path-incorrect"
	case KindNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Error is the sole error type returned by the client. It carries the
// classified kind alongside the provider or transport message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("pagomedios: %s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf unwraps err and reports its classification. Errors that did
// not originate in this package report KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
