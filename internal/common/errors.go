// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Kind tags a failure with its place in the error taxonomy. Errors are
// classified once at the collaborator boundary; downstream code switches
// on the kind, never on message text.
type Kind string

// Error kinds.
const (
	KindPrecondition  Kind = "precondition"
	KindTransport     Kind = "transport"
	KindNotFound      Kind = "not_found"
	KindServer        Kind = "server"
	KindValidation    Kind = "validation"
	KindHostInsertion Kind = "host_insertion"
)

// Common application errors.
var (
	// ErrNotFound is the storage-level miss sentinel.
	ErrNotFound = errors.New("not found")

	// ErrSaveInFlight indicates a second save was attempted while one
	// is already pending for the same document session.
	ErrSaveInFlight = errors.New("save already in progress")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error is a classified failure. Retryable is a hint for callers; the
// core never auto-retries.
type Error struct {
	Err       error
	Kind      Kind
	Message   string
	Retryable bool
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Precondition reports a missing selection or identifier. The operation
// was never attempted remotely.
func Precondition(message string) error {
	return &Error{Kind: KindPrecondition, Message: message}
}

// Transport reports a request that could not complete. Timeouts are
// marked retryable for the caller.
func Transport(message string, err error, retryable bool) error {
	return &Error{Kind: KindTransport, Message: message, Err: err, Retryable: retryable}
}

// NotFoundError reports a backend resource that does not exist.
func NotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Server reports a backend-internal failure, surfacing the backend
// detail when it provided one.
func Server(message string, err error) error {
	return &Error{Kind: KindServer, Message: message, Err: err}
}

// Validation reports a malformed response shape or invalid input.
func Validation(message string, err error) error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// HostInsertion reports a rejected or failed document-host insertion.
func HostInsertion(message string, err error) error {
	return &Error{Kind: KindHostInsertion, Message: message, Err: err}
}

// KindOf returns the classified kind of an error, or the empty kind for
// unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified.Retryable
	}

	return false
}
