package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is returned when no AI credential is configured.
// It is a configuration condition, distinct from every transport error:
// callers route it to the settings screen and never retry it.
var ErrNotConfigured = errors.New("ai credential not configured")

// ErrorKind classifies transport-level AI failures.
type ErrorKind string

const (
	// ErrorKindEnvelope: the response body parsed but the expected
	// text field could not be located.
	ErrorKindEnvelope ErrorKind = "envelope"
	// ErrorKindStatus: non-2xx response without a structured error body.
	ErrorKindStatus ErrorKind = "status"
	// ErrorKindServer: non-2xx response carrying a server-supplied message.
	ErrorKindServer ErrorKind = "server"
	// ErrorKindTimeout: the deadline elapsed before the request finished.
	ErrorKindTimeout ErrorKind = "timeout"
)

// Error is a structured transport failure from an AI call.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("ai %s error", e.Kind)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the caller may usefully retry. All
// transport failures are transient from the caller's perspective;
// only ErrNotConfigured (not an *Error) is terminal.
func (e *Error) Retryable() bool {
	return true
}

// NewTimeoutError builds the typed failure produced when the timer
// wins the race against an in-flight request.
func NewTimeoutError(after time.Duration) *Error {
	return &Error{
		Kind:    ErrorKindTimeout,
		Message: fmt.Sprintf("no response within %s", after),
	}
}

// KindOf extracts the ErrorKind from an error, or "" if it is not a
// transport failure.
func KindOf(err error) ErrorKind {
	var aiErr *Error
	if errors.As(err, &aiErr) {
		return aiErr.Kind
	}
	return ""
}

// IsTimeout reports whether err is a deadline failure.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrorKindTimeout
}

// IsNotConfigured reports whether err is the missing-credential condition.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// wrapContextErr maps context cancellation/expiry into the timeout kind
// so that provider SDK errors and race losses look the same to callers.
func wrapContextErr(err error) (*Error, bool) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: ErrorKindTimeout, Message: "request cancelled", Cause: err}, true
	}
	return nil, false
}
