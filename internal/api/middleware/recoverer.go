package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mando-cx/mando-api/internal/platform/logger"
)

// ErrorWriter writes the response for an error that escaped a handler.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// PanicError is the error produced from a recovered panic.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Recoverer turns a panic in a later stage into an error response written by
// writeError. http.ErrAbortHandler is re-raised.
func Recoverer(writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.FromContextOrDefault(r.Context(), nil).Error("recovered from panic",
					slog.String("panic", fmt.Sprint(rvr)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				writeError(w, r, &PanicError{Value: rvr})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
