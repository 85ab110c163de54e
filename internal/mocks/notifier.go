package mocks

import (
	"context"
	"sync"

	"github.com/mando-cx/mando-api/internal/platform/novu"
)

// MockNotifier implements api.Notifier for testing
type MockNotifier struct {
	// Custom behavior function
	TriggerFn func(ctx context.Context, req novu.TriggerRequest) (*novu.TriggerResponse, error)

	// Default response values
	Response *novu.TriggerResponse
	Err      error

	// Call tracking for verification
	TriggerCalls struct {
		mu       sync.Mutex
		Count    int
		Requests []novu.TriggerRequest
	}
}

// Trigger implements api.Notifier
func (m *MockNotifier) Trigger(ctx context.Context, req novu.TriggerRequest) (*novu.TriggerResponse, error) {
	m.TriggerCalls.mu.Lock()
	m.TriggerCalls.Count++
	m.TriggerCalls.Requests = append(m.TriggerCalls.Requests, req)
	m.TriggerCalls.mu.Unlock()

	if m.TriggerFn != nil {
		return m.TriggerFn(ctx, req)
	}
	return m.Response, m.Err
}

// CallCount returns the number of Trigger calls.
func (m *MockNotifier) CallCount() int {
	m.TriggerCalls.mu.Lock()
	defer m.TriggerCalls.mu.Unlock()
	return m.TriggerCalls.Count
}

// LastRequest returns the most recent request, if any.
func (m *MockNotifier) LastRequest() (novu.TriggerRequest, bool) {
	m.TriggerCalls.mu.Lock()
	defer m.TriggerCalls.mu.Unlock()
	if len(m.TriggerCalls.Requests) == 0 {
		return novu.TriggerRequest{}, false
	}
	return m.TriggerCalls.Requests[len(m.TriggerCalls.Requests)-1], true
}
