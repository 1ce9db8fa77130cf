// Package apierror provides the typed error taxonomy shared by all services and
// the standardized response envelope rendered to clients. All errors returned to
// clients go through this package to ensure consistency and to prevent leaking
// internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for HTTP mapping and for callers that branch on the
// failure class rather than the message.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindPermission
	KindNotFound
	KindInvalidTransition
	KindConflict
	KindRetryExhausted
)

// Error is the canonical error for all 4xx/5xx responses.
// Detail is always safe to show to the client.
type Error struct {
	Kind   Kind              `json:"-"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`

	cause error
}

func (e *Error) Error() string { return e.Detail }

// Unwrap exposes the underlying cause (internal errors only) for logging.
func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus maps the error kind to the status code used by every handler.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition, KindConflict:
		return http.StatusConflict
	case KindRetryExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error        { return &Error{Kind: KindValidation, Detail: msg} }
func Permission(msg string) *Error        { return &Error{Kind: KindPermission, Detail: msg} }
func NotFound(msg string) *Error          { return &Error{Kind: KindNotFound, Detail: msg} }
func InvalidTransition(msg string) *Error { return &Error{Kind: KindInvalidTransition, Detail: msg} }
func Conflict(msg string) *Error          { return &Error{Kind: KindConflict, Detail: msg} }
func RetryExhausted(msg string) *Error    { return &Error{Kind: KindRetryExhausted, Detail: msg} }

// Internal wraps an unexpected error. The cause stays server-side; clients see
// only the generic detail.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Detail: "internal server error", cause: err}
}

// ValidationFields wraps multiple field errors from request binding.
func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: "validation failed", Fields: fields}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
