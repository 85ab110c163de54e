package novu

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient("", "", nil)
	assert.ErrorIs(t, err, ErrMissingSecretKey)

	_, err = NewClient("   ", "", nil)
	assert.ErrorIs(t, err, ErrMissingSecretKey)

	c, err := NewClient("secret", "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, c.serverURL)
}

func TestTrigger(t *testing.T) {
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/events/trigger", r.URL.Path)
		assert.Equal(t, "ApiKey test-secret", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"acknowledged":true,"status":"processed","transactionId":"tx_1"}}`))
	}))
	defer srv.Close()

	c, err := NewClient("test-secret", srv.URL+"/", srv.Client())
	require.NoError(t, err)

	resp, err := c.Trigger(context.Background(), TriggerRequest{
		WorkflowID: "test-workflow-1234",
		To:         Subscriber{SubscriberID: "sub-1", Email: "someone@mando.cx", FirstName: "Sam"},
		Payload:    map[string]any{"now": "2024-01-01T00:00:00Z"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"acknowledged":true,"status":"processed","transactionId":"tx_1"}`, string(resp.Data))

	assert.Equal(t, "test-workflow-1234", received["name"])
	to, ok := received["to"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sub-1", to["subscriberId"])
	assert.Equal(t, "someone@mando.cx", to["email"])
	assert.NotContains(t, to, "lastName")
}

func TestTriggerProviderErrors(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"message":"Too many requests"}`, "Too many requests"},
		{"validation list", http.StatusUnprocessableEntity, `{"message":["name should not be empty","to must be an object"]}`, "name should not be empty; to must be an object"},
		{"error field", http.StatusUnauthorized, `{"statusCode":401,"error":"Unauthorized"}`, "Unauthorized"},
		{"plain text", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"empty body", http.StatusServiceUnavailable, ``, "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewClient("test-secret", srv.URL, srv.Client())
			require.NoError(t, err)

			_, err = c.Trigger(context.Background(), TriggerRequest{WorkflowID: "wf", To: Subscriber{SubscriberID: "s"}})

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expectedMessage, apiErr.Message)
		})
	}
}

func TestTriggerTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient("test-secret", url, nil)
	require.NoError(t, err)

	_, err = c.Trigger(context.Background(), TriggerRequest{WorkflowID: "wf", To: Subscriber{SubscriberID: "s"}})
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "failed to call notification provider")
}

func TestParseSDKError(t *testing.T) {
	apiErr := parseSDKError(errors.New(`request was not successful, status code 409, {"message":"duplicate"}`))
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "duplicate", apiErr.Message)

	assert.Nil(t, parseSDKError(errors.New("failed to execute request: connection refused")))
}
