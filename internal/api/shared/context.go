package shared

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

const (
	// RequestIDKey is the key for the request ID in the request context
	RequestIDKey ContextKey = "requestID"

	// RequestIDHeader carries the request ID on requests and responses.
	RequestIDHeader = "X-Request-Id"

	// MaxRequestIDLength bounds inbound request IDs that are reused.
	MaxRequestIDLength = 255
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9_=-]+$`)

// WithRequestID returns a copy of ctx carrying the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// If no request ID exists, it returns an empty string.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return requestID
}

// NewRequestID generates a fresh request ID.
func NewRequestID() string {
	return uuid.NewString()
}

// IsValidRequestID reports whether an inbound request ID may be reused.
func IsValidRequestID(id string) bool {
	return len(id) > 0 && len(id) <= MaxRequestIDLength && requestIDPattern.MatchString(id)
}
