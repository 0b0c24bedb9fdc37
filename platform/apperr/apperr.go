// Package apperr provides standardized domain error types for the application.
// Domain services return these typed errors; the dispatcher maps them to
// short localized user-facing replies, and the HTTP layer to status codes.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindNotFound indicates a resource was not found.
	KindNotFound
	// KindValidation indicates user input rejected by a wizard step
	// validator. Recovered locally by re-prompting, never a system error.
	KindValidation
	// KindNoActiveState indicates an advance on a user with no wizard in
	// progress. Treated as a routing miss.
	KindNoActiveState
	// KindUserMissing indicates the backing user record is absent mid-wizard
	// or at commit time. The wizard is aborted, never retried.
	KindUserMissing
	// KindCommitFailed indicates the persistence layer could not atomically
	// write a wizard's records. Conversation state is kept so the user can
	// resubmit.
	KindCommitFailed
	// KindUnauthorized indicates the webhook secret check failed.
	KindUnauthorized
	// KindBadRequest indicates a malformed inbound event.
	KindBadRequest
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Error is a domain error with a typed Kind.
type Error struct {
	Kind    Kind
	Message string
	Op      string // Operation that failed (optional)
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound, KindUserMissing, KindNoActiveState:
		return http.StatusNotFound
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindCommitFailed, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// Convenience constructors for common error types.

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation creates a validation rejection.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// NoActiveState creates a routing-miss error.
func NoActiveState(message string) *Error {
	return New(KindNoActiveState, message)
}

// UserMissing creates a missing-user error.
func UserMissing(message string) *Error {
	return New(KindUserMissing, message)
}

// CommitFailed creates a commit failure wrapping the storage error.
func CommitFailed(message string, err error) *Error {
	return Wrap(KindCommitFailed, message, err)
}

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// BadRequest creates a bad request error.
func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// Internal creates an internal error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// GetKind extracts the error kind from an error.
// Returns KindUnknown if the error is not an *Error.
func GetKind(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
