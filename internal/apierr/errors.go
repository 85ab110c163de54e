package apierr

import (
	"fmt"
	"net/http"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	// A machine readable error code.
	Code Code `json:"code" example:"INTERNAL_SERVER_ERROR"`
	// A human readable explanation of what went wrong.
	Message string `json:"message"`
	// Please always include the requestId in your error report.
	RequestID string `json:"requestId" example:"req_1234"`
}

// Error is an error raised by the application with an explicit code.
type Error struct {
	Code    Code
	Message string
	// Cause is kept for logging and errors.Is/As; it is never sent to clients.
	Cause error
}

// New creates an application error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an application error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an application error that records the underlying cause.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status for the error's code.
func (e *Error) Status() int {
	return CodeToStatus(e.Code)
}

// NotFound is the error for a request that matched no route.
func NotFound(path string) *Error {
	return Newf(CodeNotFound, "The requested resource %s was not found", path)
}

// HTTPError is a framework-level failure that carries a status but no code.
type HTTPError struct {
	Status  int
	Message string
	Cause   error
}

// NewHTTPError creates an HTTPError. An empty message defaults to the
// status text.
func NewHTTPError(status int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &HTTPError{Status: status, Message: message}
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("http %d: %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// Unwrap returns the underlying cause.
func (e *HTTPError) Unwrap() error {
	return e.Cause
}
