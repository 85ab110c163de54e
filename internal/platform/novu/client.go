// Package novu wraps the notification provider's SDK for the event trigger
// endpoint.
package novu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	novu "github.com/novuhq/go-novu/lib"
)

// DefaultServerURL is the provider's EU region.
const DefaultServerURL = "https://eu.api.novu.co"

// ErrMissingSecretKey is returned by NewClient when no secret key is set.
var ErrMissingSecretKey = errors.New("novu: secret key is not set")

// Subscriber identifies the recipient of a notification.
type Subscriber struct {
	SubscriberID string `json:"subscriberId" validate:"required"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
}

// TriggerRequest starts a workflow for one subscriber.
type TriggerRequest struct {
	WorkflowID string         `json:"name" validate:"required"`
	To         Subscriber     `json:"to"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// TriggerResponse is the provider's answer, kept opaque.
type TriggerResponse struct {
	Data json.RawMessage `json:"data"`
}

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("novu: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the provider through the official SDK.
type Client struct {
	serverURL string
	api       *novu.APIClient
}

// NewClient creates a Client. An empty serverURL uses DefaultServerURL and a
// nil httpClient uses http.DefaultClient.
func NewClient(secretKey, serverURL string, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, ErrMissingSecretKey
	}
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	serverURL = strings.TrimRight(serverURL, "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	backend, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid notification server url: %w", err)
	}

	return &Client{
		serverURL: serverURL,
		api: novu.NewAPIClient(secretKey, &novu.Config{
			BackendURL: backend,
			HttpClient: httpClient,
		}),
	}, nil
}

// Trigger starts the workflow named in req.
func (c *Client) Trigger(ctx context.Context, req TriggerRequest) (*TriggerResponse, error) {
	opts := novu.ITriggerPayloadOptions{To: req.To}
	if req.Payload != nil {
		opts.Payload = req.Payload
	}

	resp, err := c.api.EventApi.Trigger(ctx, req.WorkflowID, opts)
	if err != nil {
		if apiErr := parseSDKError(err); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("failed to call notification provider: %w", err)
	}

	out := &TriggerResponse{}
	if resp.Data != nil {
		data, err := json.Marshal(resp.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode provider response: %w", err)
		}
		out.Data = data
	}
	return out, nil
}

// sdkStatusError matches the SDK's message for a non-2xx answer, which
// carries the status and the raw response body.
var sdkStatusError = regexp.MustCompile(`(?s)request was not successful, status code (\d+),\s?(.*)$`)

// parseSDKError recovers the status and provider message from an SDK error.
// It returns nil for transport failures.
func parseSDKError(err error) *APIError {
	m := sdkStatusError.FindStringSubmatch(err.Error())
	if m == nil {
		return nil
	}
	status, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return nil
	}
	return &APIError{StatusCode: status, Message: errorMessage(status, []byte(m[2]))}
}

// errorMessage extracts the provider's message from an error body.
func errorMessage(status int, body []byte) string {
	var parsed struct {
		Message any    `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		switch m := parsed.Message.(type) {
		case string:
			if m != "" {
				return m
			}
		case []any:
			parts := make([]string, 0, len(m))
			for _, p := range m {
				parts = append(parts, fmt.Sprint(p))
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(status)
}
