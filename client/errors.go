package client

import (
	"errors"
	"fmt"
)

// StatusError is the uniform failure of a request sequence. All three
// failure sources — a non-2xx completion, a transport-level failure, and a
// configured timeout firing — carry this one shape. Transport failures and
// timeouts report StatusCode 0, matching a transport that never produced a
// status line.
type StatusError struct {
	// StatusCode is the HTTP status code, or 0 when the transport failed
	// before producing one.
	StatusCode int
	// StatusText is the status line reason, or the transport failure text.
	StatusText string

	cause error
}

// Error returns the canonical "<statusCode>: <statusText>" form.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.StatusText)
}

// Unwrap returns the underlying transport error, if any.
func (e *StatusError) Unwrap() error {
	return e.cause
}

// newStatusError builds the failure for a completed non-2xx response.
func newStatusError(code int, text string) *StatusError {
	return &StatusError{StatusCode: code, StatusText: text}
}

// newTransportError builds the failure snapshot for an attempt that never
// completed (network failure or timeout).
func newTransportError(err error) *StatusError {
	return &StatusError{StatusCode: 0, StatusText: err.Error(), cause: err}
}

// AsStatus extracts a *StatusError from an error chain.
func AsStatus(err error) (*StatusError, bool) {
	var e *StatusError
	ok := errors.As(err, &e)
	return e, ok
}
