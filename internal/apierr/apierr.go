// Package apierr defines the typed, uniform representation of
// request-handling failures used across the HTTP layer.
//
// Every failure a handler detects is expressed as an *Error carrying an
// HTTP status, a human-readable message, and an operational flag.
// Operational errors are expected steady-state outcomes (bad client
// input, a legitimately missing resource); non-operational errors always
// indicate a bug or infrastructure fault. Handlers never format error
// bodies themselves: they attach the *Error to the Gin context and the
// terminal translation middleware produces the single, uniform response
// shape.
//
// The error taxonomy is a tagged variant over Kind with one constructor
// per kind, rather than a class hierarchy:
//
//	apierr.BadRequest("Item name is required") // 400, operational
//	apierr.NotFound("Item not found")          // 404, operational
//	apierr.Internal("boom")                    // 500, non-operational
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags the category of an API error. Each kind maps to exactly one
// HTTP status code.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnprocessable
	KindInternal
)

// ErrUnauthorized is the recognized authorization-failure marker.
// Errors wrapping it are translated to 401 with a fixed "Unauthorized"
// message, mirroring how validation markers translate to 400. No current
// handler produces it, but the translator recognizes it.
var ErrUnauthorized = errors.New("unauthorized")

// Error is the control entity for request failures. It is constructed at
// the point a problem is detected, consumed exactly once by the terminal
// translator, and never persisted or retried.
type Error struct {
	Kind        Kind
	Status      int
	Message     string
	Operational bool
	Err         error // optional underlying cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Wrap attaches an underlying cause and returns the same error, so call
// sites can chain: apierr.Internal("query failed").Wrap(err).
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// New constructs an Error for an arbitrary status code. Statuses without
// a dedicated kind fall back to KindBadRequest (<500) or KindInternal.
func New(status int, message string, operational bool) *Error {
	return &Error{
		Kind:        kindFor(status),
		Status:      status,
		Message:     message,
		Operational: operational,
	}
}

// BadRequest returns a 400 operational error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message, true)
}

// Unauthorized returns a 401 operational error.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return New(http.StatusUnauthorized, message, true)
}

// Forbidden returns a 403 operational error.
func Forbidden(message string) *Error {
	if message == "" {
		message = "Forbidden"
	}
	return New(http.StatusForbidden, message, true)
}

// NotFound returns a 404 operational error.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return New(http.StatusNotFound, message, true)
}

// Conflict returns a 409 operational error.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, true)
}

// UnprocessableEntity returns a 422 operational error.
func UnprocessableEntity(message string) *Error {
	return New(http.StatusUnprocessableEntity, message, true)
}

// Internal returns a 500 non-operational error.
func Internal(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return New(http.StatusInternalServerError, message, false)
}

func kindFor(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnprocessableEntity:
		return KindUnprocessable
	default:
		if status >= http.StatusInternalServerError {
			return KindInternal
		}
		return KindBadRequest
	}
}
