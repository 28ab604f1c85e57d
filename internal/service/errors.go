package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies service errors for the HTTP layer
type Kind int

const (
	// KindInternal is a store or unexpected failure
	KindInternal Kind = iota
	// KindBadRequest is missing or malformed input
	KindBadRequest
	// KindForbidden is a rejected admin credential
	KindForbidden
	// KindTooManyRequests is a rate limit rejection
	KindTooManyRequests
)

// StatusCode returns the HTTP status for the kind
func (k Kind) StatusCode() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is returned by the comment service. Message is safe to show to
// clients; Err is for logs only.
type Error struct {
	Kind       Kind
	Message    string
	Err        error
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

func badRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// AsError extracts a service error, wrapping anything else as internal
func AsError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return internal(MsgInternal, err)
}

// Client-facing messages
const (
	MsgMissingSlug      = "Missing slug"
	MsgFetchFailed      = "Failed to fetch comments"
	MsgMissingFields    = "Missing required fields"
	MsgSaveFailed       = "Failed to save comment"
	MsgMissingID        = "Missing comment ID"
	MsgInvalidAdminCode = "Invalid admin code"
	MsgAdminCodeNeeded  = "Admin code required"
	MsgDeleteFailed     = "Failed to delete comment"
	MsgInternal         = "Internal server error"
)
