// Package httperr defines the error taxonomy shared by the gateway client
// and the HTTP layer. Handlers map an error's kind to an HTTP status; the
// underlying detail is only exposed in development mode.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a gateway error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindRateLimited
	KindUpstream
	KindConfiguration
	KindNotFound
)

// Error carries a machine-readable code and a human-readable message
// alongside the wrapped cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
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

// Validation reports missing or malformed input. The message should name
// the offending field.
func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// RateLimited reports an exceeded rate-limit policy.
func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Code: "rate_limit_exceeded", Message: message}
}

// Upstream reports a provider failure: unreachable, non-success status,
// or timeout.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Code: "upstream_error", Message: message, Err: err}
}

// Configuration reports a missing or invalid provider credential.
func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Code: "not_configured", Message: message}
}

// NotFound reports an unknown resource.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: "not_found", Message: message}
}

// Internal wraps anything unexpected.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal_error", Message: "internal server error", Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal for
// untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindNotFound:
		return http.StatusNotFound
	case KindConfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf extracts the machine-readable code from err.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "internal_error"
}
