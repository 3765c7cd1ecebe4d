package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the session, API, and workflow layers.
var (
	// ErrUnauthenticated signals a missing or expired session. The session
	// layer handles it silently: clear the token, fall back to logged-out.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrOutOfCredits signals that a credit gate (local policy or remote
	// endpoint) refused the action. Surfaced with an upgrade call-to-action.
	ErrOutOfCredits = errors.New("no credits remaining")

	// ErrBusy signals that a profile-affecting request of the same kind is
	// already in flight and the new one was rejected synchronously.
	ErrBusy = errors.New("another request is already in flight")
)

// ValidationReason classifies why a file candidate was rejected locally
type ValidationReason string

const (
	ReasonUnsupportedType ValidationReason = "UnsupportedType"
	ReasonTooLarge        ValidationReason = "TooLarge"
)

// ValidationError reports a locally rejected file. No network call is made
// for rejected candidates.
type ValidationError struct {
	Reason ValidationReason
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonUnsupportedType:
		return "unsupported file type, expected JPG, PNG or WebP"
	case ReasonTooLarge:
		return "file too large, maximum size is 10MB"
	}
	return fmt.Sprintf("invalid file: %s", e.Reason)
}

// RemoteError carries a failure message supplied by the server. The message
// is surfaced to the user verbatim when present.
type RemoteError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// TransportError wraps a network-level failure (server unreachable, timeout).
// The user sees a generic message, the cause stays available for logs.
type TransportError struct {
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap exposes the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsUnauthenticated reports whether err is the expired-session signal
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsOutOfCredits reports whether err is a credit-gate failure
func IsOutOfCredits(err error) bool {
	return errors.Is(err, ErrOutOfCredits)
}
