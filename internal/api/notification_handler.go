package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mando-cx/mando-api/internal/api/shared"
	"github.com/mando-cx/mando-api/internal/apierr"
	"github.com/mando-cx/mando-api/internal/platform/logger"
	"github.com/mando-cx/mando-api/internal/platform/novu"
)

// Notifier triggers notification workflows.
type Notifier interface {
	Trigger(ctx context.Context, req novu.TriggerRequest) (*novu.TriggerResponse, error)
}

// Recipient identifies who receives a notification.
type Recipient struct {
	SubscriberID string `json:"subscriberId" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
}

// TriggerNotificationRequest is the body of POST /api/notifications/trigger.
type TriggerNotificationRequest struct {
	WorkflowID string         `json:"workflowId" validate:"required"`
	To         Recipient      `json:"to"`
	Payload    map[string]any `json:"payload"`
}

// TriggerNotificationResponse wraps the provider's answer.
type TriggerNotificationResponse struct {
	NovuResponse *novu.TriggerResponse `json:"novuResponse"`
}

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifier Notifier
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifier Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// Trigger handles POST /api/notifications/trigger requests
func (h *NotificationHandler) Trigger(w http.ResponseWriter, r *http.Request) error {
	var req TriggerNotificationRequest
	if err := shared.DecodeAndValidate(w, r, &req); err != nil {
		return err
	}

	resp, err := h.notifier.Trigger(r.Context(), novu.TriggerRequest{
		WorkflowID: req.WorkflowID,
		To: novu.Subscriber{
			SubscriberID: req.To.SubscriberID,
			Email:        req.To.Email,
			FirstName:    req.To.FirstName,
			LastName:     req.To.LastName,
		},
		Payload: req.Payload,
	})
	if err != nil {
		return providerError(r.Context(), req.WorkflowID, err)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TriggerNotificationResponse{NovuResponse: resp})
	return nil
}

// providerError maps a failed trigger to an application error. Client errors
// reported by the provider keep the provider's message.
func providerError(ctx context.Context, workflowID string, err error) error {
	var apiErr *novu.APIError
	if !errors.As(err, &apiErr) {
		return apierr.Wrap(err, apierr.CodeInternalServerError, "Failed to trigger notification")
	}

	logger.FromContextOrDefault(ctx, nil).Warn("notification provider rejected trigger",
		slog.String("workflow_id", workflowID),
		slog.Int("provider_status", apiErr.StatusCode),
	)

	switch {
	case apiErr.StatusCode == http.StatusTooManyRequests:
		return apierr.Wrap(err, apierr.CodeRateLimited, apiErr.Message)
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return apierr.Wrap(err, apierr.CodeBadRequest, apiErr.Message)
	default:
		return apierr.Wrap(err, apierr.CodeInternalServerError, "Failed to trigger notification")
	}
}
