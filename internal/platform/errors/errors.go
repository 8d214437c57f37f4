// Package errors provides structured errors that carry an HTTP-facing category and context fields.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the category of an error, used for the response "type" field and metric labels.
type ErrorType string

const (
	TypeValidation      ErrorType = "validation"      // 400
	TypeUnauthenticated ErrorType = "unauthenticated" // 401
	TypeNotFound        ErrorType = "not_found"       // 404
	TypeConflict        ErrorType = "conflict"        // 409
	TypeUnavailable     ErrorType = "unavailable"     // 503
	TypeInternal        ErrorType = "internal"        // 500
	TypeExternal        ErrorType = "external"        // 502
)

var statusByType = map[ErrorType]int{
	TypeValidation:      http.StatusBadRequest,
	TypeUnauthenticated: http.StatusUnauthorized,
	TypeNotFound:        http.StatusNotFound,
	TypeConflict:        http.StatusConflict,
	TypeUnavailable:     http.StatusServiceUnavailable,
	TypeInternal:        http.StatusInternalServerError,
	TypeExternal:        http.StatusBadGateway,
}

type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error type to a status code; unknown types are 500.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByType[e.Type]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func newError(t ErrorType, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause, Context: make(map[string]any)}
}

func ValidationError(message string) *Error { return newError(TypeValidation, message, nil) }

func UnauthenticatedError(message string) *Error { return newError(TypeUnauthenticated, message, nil) }

func NotFoundError(message string) *Error { return newError(TypeNotFound, message, nil) }

func ConflictError(message string) *Error { return newError(TypeConflict, message, nil) }

func UnavailableError(message string, cause error) *Error {
	return newError(TypeUnavailable, message, cause)
}

func InternalError(message string, cause error) *Error {
	return newError(TypeInternal, message, cause)
}

func ExternalError(message string, cause error) *Error {
	return newError(TypeExternal, message, cause)
}

// WithField adds a context field and returns the error for chaining.
func (e *Error) WithField(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ErrorResponse is the JSON body sent to clients.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Type    ErrorType      `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Type:    e.Type,
		Context: e.Context,
	}
}

// AsStructuredError returns err itself when it is (or wraps) an *Error and an
// internal error wrapping it otherwise.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError("internal server error", err)
}
