package apierr

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mando-cx/mando-api/internal/redact"
)

// DefaultMessage is used when an unrecognised error carries no text.
const DefaultMessage = "something unexpected happened"

// Classifier maps errors to an HTTP status and an ErrorResponse.
// It is stateless apart from its logger and safe for concurrent use.
type Classifier struct {
	logger *slog.Logger
}

// NewClassifier creates a Classifier. A nil logger uses slog.Default().
func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// Classify converts err into a status and response body. requestID is copied
// into the body verbatim; the classifier never generates one.
//
// The outermost recognised error in the chain decides: a validation failure,
// an application error or a framework error. Anything else is an internal
// server error. Every result
// with status >= 500 is logged.
func (c *Classifier) Classify(err error, requestID string) (int, ErrorResponse) {
	status, body := classify(err)
	body.RequestID = requestID

	if status >= http.StatusInternalServerError {
		c.logger.LogAttrs(context.Background(), slog.LevelError, "request failed with server error",
			slog.String("request_id", requestID),
			slog.String("code", string(body.Code)),
			slog.Int("status_code", status),
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)),
		)
	}

	return status, body
}

func classify(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Code:    CodeInternalServerError,
			Message: DefaultMessage,
		}
	}

	switch known := outermost(err).(type) {
	case *ValidationError, validator.ValidationErrors:
		return http.StatusBadRequest, ErrorResponse{
			Code:    CodeBadRequest,
			Message: ValidationMessage(known),
		}
	case *Error:
		return known.Status(), ErrorResponse{
			Code:    known.Code,
			Message: known.Message,
		}
	case *HTTPError:
		status := known.Status
		if status < 100 || status > 599 {
			status = http.StatusInternalServerError
		}
		return status, ErrorResponse{
			Code:    StatusToCode(status),
			Message: known.Message,
		}
	}

	message := err.Error()
	if message == "" {
		message = DefaultMessage
	}
	return http.StatusInternalServerError, ErrorResponse{
		Code:    CodeInternalServerError,
		Message: message,
	}
}

// outermost returns the first error in err's chain that carries its own
// classification, or nil. An application error that wraps a validation
// failure keeps its explicit code.
func outermost(err error) error {
	for err != nil {
		switch err.(type) {
		case *ValidationError, validator.ValidationErrors, *Error, *HTTPError:
			return err
		}

		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if found := outermost(inner); found != nil {
					return found
				}
			}
			return nil
		default:
			return nil
		}
	}
	return nil
}
