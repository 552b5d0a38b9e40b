// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the terminal error translator: the single place
// that turns whatever error a handler (or earlier stage) attached to the
// Gin context into an HTTP error body. Handlers never write error
// responses themselves; they call c.Error(...) with an *apierr.Error (or
// any error) and abort, and this middleware formats the response after
// the chain unwinds.
//
// Classification:
//   - *apierr.Error: use its status/message/operational flag as-is.
//   - validator.ValidationErrors or JSON decode errors: 400 with the
//     error's message (operational).
//   - errors wrapping apierr.ErrUnauthorized: 401, fixed "Unauthorized".
//   - anything else: 500 "Internal Server Error", non-operational.
//
// Logging policy: non-operational errors and any status >= 500 are logged
// at error level with full detail (status, message, stack, path, method,
// timestamp). Operational errors below 500 are logged at warn level with
// status, message, path, and method only — they are expected steady-state
// outcomes and would be noise at error level.
//
// Response body: {"status":"error","statusCode":<n>,"message":<s>} plus a
// "stack" field (error chain and stack trace) outside production.
package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/go-items-backend/internal/apierr"
)

// ErrorHandler returns the terminal translation middleware. Register it
// last in the chain so it runs closest to the handlers: the body it writes
// is then observed by the logging and metrics middleware on the way out.
//
// production controls whether stack traces are included in response bodies.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		apiErr := classify(c.Errors.Last().Err)
		logTranslated(c, apiErr)

		if c.Writer.Written() {
			return
		}

		body := gin.H{
			"status":     "error",
			"statusCode": apiErr.Status,
			"message":    apiErr.Message,
		}
		if !production {
			body["stack"] = errDetail(apiErr)
		}
		c.JSON(apiErr.Status, body)
	}
}

// classify normalizes an arbitrary error into an *apierr.Error.
func classify(err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}

	var vErrs validator.ValidationErrors
	var jsonSyntax *json.SyntaxError
	var jsonType *json.UnmarshalTypeError
	switch {
	case errors.As(err, &vErrs), errors.As(err, &jsonSyntax), errors.As(err, &jsonType):
		return apierr.BadRequest(err.Error())
	case errors.Is(err, apierr.ErrUnauthorized):
		return apierr.Unauthorized("Unauthorized")
	default:
		return apierr.Internal("Internal Server Error").Wrap(err)
	}
}

// logTranslated applies the logging policy for a translated error.
func logTranslated(c *gin.Context, e *apierr.Error) {
	lg := LoggerFrom(c)
	if !e.Operational || e.Status >= http.StatusInternalServerError {
		lg.Error().
			Int("statusCode", e.Status).
			Str("message", e.Error()).
			Bytes("stack", debug.Stack()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Time("timestamp", time.Now().UTC()).
			Msg("error occurred")
		return
	}
	lg.Warn().
		Int("statusCode", e.Status).
		Str("message", e.Message).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Msg("operational error")
}

// errDetail renders the diagnostic string exposed in non-production
// bodies: the full error chain when a cause is attached, followed by
// the goroutine stack captured at translation time.
func errDetail(e *apierr.Error) string {
	msg := e.Message
	if e.Err != nil {
		msg = e.Error()
	}
	return msg + "\n" + string(debug.Stack())
}
