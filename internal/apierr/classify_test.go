package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mando-cx/mando-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   Code
		expectedMsg    string
	}{
		{
			name:           "application error",
			err:            New(CodeRateLimited, "too many requests"),
			expectedStatus: http.StatusTooManyRequests,
			expectedCode:   CodeRateLimited,
			expectedMsg:    "too many requests",
		},
		{
			name:           "wrapped application error",
			err:            fmt.Errorf("handler: %w", New(CodeNotUnique, "already exists")),
			expectedStatus: http.StatusConflict,
			expectedCode:   CodeNotUnique,
			expectedMsg:    "already exists",
		},
		{
			name:           "application error with cause keeps its own message",
			err:            Wrap(errors.New("dial tcp: refused"), CodeInternalServerError, "provider unavailable"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternalServerError,
			expectedMsg:    "provider unavailable",
		},
		{
			name:           "shared status code",
			err:            New(CodeExpired, "link expired"),
			expectedStatus: http.StatusForbidden,
			expectedCode:   CodeExpired,
			expectedMsg:    "link expired",
		},
		{
			name:           "framework error with mapped status",
			err:            NewHTTPError(http.StatusMethodNotAllowed, ""),
			expectedStatus: http.StatusMethodNotAllowed,
			expectedCode:   CodeMethodNotAllowed,
			expectedMsg:    "Method Not Allowed",
		},
		{
			name:           "framework 401",
			err:            NewHTTPError(http.StatusUnauthorized, "missing credentials"),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   CodeUnauthorized,
			expectedMsg:    "missing credentials",
		},
		{
			name:           "framework error with unmapped status keeps status",
			err:            NewHTTPError(http.StatusRequestEntityTooLarge, "body too large"),
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedCode:   CodeInternalServerError,
			expectedMsg:    "body too large",
		},
		{
			name:           "validation error bypasses the other rules",
			err:            NewValidationError(Issue{Path: []string{"email"}, Message: "Invalid email"}),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeBadRequest,
			expectedMsg:    "email: Invalid email",
		},
		{
			name:           "wrapped validation error",
			err:            fmt.Errorf("decode: %w", NewValidationError(Issue{Path: []string{"to", "email"}, Message: "Invalid email"})),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeBadRequest,
			expectedMsg:    "to.email: Invalid email",
		},
		{
			name: "application error wrapping a validation failure keeps its code",
			err: Wrap(
				NewValidationError(Issue{Path: []string{"email"}, Message: "Invalid email"}),
				CodeNotUnique, "subscriber already exists",
			),
			expectedStatus: http.StatusConflict,
			expectedCode:   CodeNotUnique,
			expectedMsg:    "subscriber already exists",
		},
		{
			name:           "framework error wrapping a validation failure keeps its status",
			err:            &HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "body too large", Cause: NewValidationError()},
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedCode:   CodeInternalServerError,
			expectedMsg:    "body too large",
		},
		{
			name:           "unknown error",
			err:            errors.New("kaboom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternalServerError,
			expectedMsg:    "kaboom",
		},
		{
			name:           "unknown error without text",
			err:            errors.New(""),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternalServerError,
			expectedMsg:    DefaultMessage,
		},
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternalServerError,
			expectedMsg:    DefaultMessage,
		},
	}

	l, _ := logger.GetTestLogger(t)
	c := NewClassifier(l)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := c.Classify(tt.err, "req_1234")

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedCode, body.Code)
			assert.Equal(t, tt.expectedMsg, body.Message)
			assert.Equal(t, "req_1234", body.RequestID)
		})
	}
}

func TestClassifyNeverInventsRequestID(t *testing.T) {
	c := NewClassifier(nil)

	_, body := c.Classify(New(CodeNotFound, "missing"), "")
	assert.Empty(t, body.RequestID)
}

func TestClassifyLogsServerErrors(t *testing.T) {
	l, buf := logger.GetTestLogger(t)
	c := NewClassifier(l)

	c.Classify(New(CodeBadRequest, "bad input"), "req-client")
	c.Classify(NewHTTPError(http.StatusNotFound, ""), "req-missing")
	assert.Empty(t, buf.EntriesWithMessage("request failed with server error"), "4xx results must not be logged")

	c.Classify(errors.New("secret=hunter22 leaked"), "req-server")
	c.Classify(NewHTTPError(http.StatusBadGateway, "upstream"), "req-gateway")

	entries := buf.EntriesWithMessage("request failed with server error")
	require.Len(t, entries, 2)

	assert.Equal(t, "req-server", entries[0]["request_id"])
	assert.Equal(t, string(CodeInternalServerError), entries[0]["code"])
	assert.Equal(t, float64(500), entries[0]["status_code"])
	assert.Equal(t, "secret=[REDACTED] leaked", entries[0]["error"])

	assert.Equal(t, "req-gateway", entries[1]["request_id"])
	assert.Equal(t, float64(502), entries[1]["status_code"])
}

func TestNotFound(t *testing.T) {
	err := NotFound("/api/unknown")

	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status())
	assert.Equal(t, "The requested resource /api/unknown was not found", err.Message)
}

func TestErrorStrings(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST: nope", New(CodeBadRequest, "nope").Error())

	cause := errors.New("io failure")
	wrapped := Wrap(cause, CodeInternalServerError, "read failed")
	assert.Equal(t, "INTERNAL_SERVER_ERROR: read failed: io failure", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)

	assert.Equal(t, "http 404: Not Found", NewHTTPError(http.StatusNotFound, "").Error())
}
