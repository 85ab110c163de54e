package shared

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req_1234")
	assert.Equal(t, "req_1234", GetRequestID(ctx))
}

func TestGetRequestIDMissing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetRequestID(context.WithValue(context.Background(), RequestIDKey, 42)))
}

func TestNewRequestID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRequestID()
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.True(t, IsValidRequestID(id))
		assert.False(t, seen[id], "request ids must be unique")
		seen[id] = true
	}
}

func TestIsValidRequestID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"uuid", "0b9e6c4e-8a55-4d55-9df4-4d2f3a2a9d11", true},
		{"prefixed", "req_1234", true},
		{"base64ish", "abc=", true},
		{"empty", "", false},
		{"space", "req 1234", false},
		{"newline injection", "req\nX-Evil: 1", false},
		{"too long", strings.Repeat("a", MaxRequestIDLength+1), false},
		{"max length", strings.Repeat("a", MaxRequestIDLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidRequestID(tt.id))
		})
	}
}
