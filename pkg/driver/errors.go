package driver

import (
	"errors"
	"fmt"
)

// Error is a structured driver error with a stable error code.
//
// Codes distinguish the failure classes a caller may want to branch on:
// transport failures, handshake rejection, connection-state violations,
// and payload encode/decode failures.
type Error struct {
	Code    string // Error code (e.g. "RF-CONN-1000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, so wrapped copies compare equal to their
// sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// Wrap returns a copy of the error wrapping the given cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// ErrorCode extracts the code from an error if it is a driver Error.
func ErrorCode(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Connection errors (CONN).
var (
	// ErrTransport indicates a socket-level connect, send, or receive
	// failure, including the peer closing mid-read.
	ErrTransport = NewError("RF-CONN-1000", "transport failure")

	// ErrHandshake indicates the server rejected the handshake.
	ErrHandshake = NewError("RF-CONN-1010", "handshake rejected")

	// ErrNotConnected indicates an operation on a connection that was
	// never established.
	ErrNotConnected = NewError("RF-CONN-1020", "not connected")

	// ErrTerminated indicates an operation on a stopped connection.
	ErrTerminated = NewError("RF-CONN-1021", "connection stopped")
)

// Query errors (QRY).
var (
	// ErrEncode indicates the codec could not encode the query.
	ErrEncode = NewError("RF-QRY-2000", "query encode failed")

	// ErrDecode indicates the codec rejected the response payload.
	ErrDecode = NewError("RF-QRY-2001", "response decode failed")
)
