package api

import (
	"log/slog"
	"net/http"

	"github.com/mando-cx/mando-api/internal/api/shared"
	"github.com/mando-cx/mando-api/internal/apierr"
	"github.com/mando-cx/mando-api/internal/metrics"
	"github.com/mando-cx/mando-api/internal/platform/logger"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler converts errors into error responses.
type ErrorHandler struct {
	classifier *apierr.Classifier
	metrics    *metrics.Collector
}

// NewErrorHandler creates an ErrorHandler. m may be nil.
func NewErrorHandler(classifier *apierr.Classifier, m *metrics.Collector) *ErrorHandler {
	if classifier == nil {
		classifier = apierr.NewClassifier(nil)
	}
	return &ErrorHandler{classifier: classifier, metrics: m}
}

// Handle adapts fn to an http.HandlerFunc. A returned error is written with
// HandleError.
func (e *ErrorHandler) Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			e.HandleError(w, r, err)
		}
	}
}

// HandleError classifies err and writes the error response.
//
// Log level strategy:
// - 5xx errors: logged at ERROR level by the classifier
// - 429 Too Many Requests: logged at WARN level
// - other 4xx errors: logged at DEBUG level
func (e *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := shared.GetRequestID(r.Context())
	status, body := e.classifier.Classify(err, requestID)

	if status < http.StatusInternalServerError {
		level := slog.LevelDebug
		if status == http.StatusTooManyRequests {
			level = slog.LevelWarn
		}
		logger.FromContextOrDefault(r.Context(), nil).LogAttrs(r.Context(), level, "API error response",
			slog.String("request_id", requestID),
			slog.String("path", r.URL.Path),
			slog.String("method", r.Method),
			slog.Int("status_code", status),
			slog.String("code", string(body.Code)),
			slog.String("message", body.Message),
		)
	}

	if e.metrics != nil {
		e.metrics.ErrorResponses.WithLabelValues(string(body.Code)).Inc()
	}

	shared.RespondWithJSON(w, r, status, body)
}

// NotFound writes the NOT_FOUND error for an unmatched route.
func (e *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	e.HandleError(w, r, apierr.NotFound(r.URL.Path))
}

// MethodNotAllowed writes the METHOD_NOT_ALLOWED error for a known route
// requested with an unsupported method.
func (e *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	e.HandleError(w, r, apierr.NewHTTPError(http.StatusMethodNotAllowed, ""))
}
