package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/mando-cx/mando-api/internal/api/shared"
	"github.com/mando-cx/mando-api/internal/platform/logger"
	"github.com/mando-cx/mando-api/internal/redact"
)

// DefaultMaxLoggedBody is the default cap on logged request bodies.
const DefaultMaxLoggedBody = 4 << 10

type readCloser struct {
	io.Reader
	io.Closer
}

// RequestLogger logs one record per request with its method, path, redacted
// headers, query and, for POST, PUT and PATCH, its body. JSON bodies are
// logged as JSON, anything else as text. Bodies are capped at maxBody bytes
// and stay readable by the handler. Multipart bodies are summarised only.
func RequestLogger(maxBody int) func(http.Handler) http.Handler {
	if maxBody <= 0 {
		maxBody = DefaultMaxLoggedBody
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attrs := []slog.Attr{
				slog.String("request_id", shared.GetRequestID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("headers", redact.Header(r.Header)),
				slog.Any("query", flattenQuery(r)),
			}

			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				attrs = append(attrs, slog.Any("body", captureBody(r, maxBody)))
			}

			logger.FromContextOrDefault(r.Context(), nil).
				LogAttrs(r.Context(), slog.LevelInfo, "request", attrs...)

			next.ServeHTTP(w, r)
		})
	}
}

func flattenQuery(r *http.Request) map[string]string {
	values := r.URL.Query()
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = redact.String(v[0])
		} else {
			out[k] = ""
		}
	}
	return out
}

// captureBody reads up to limit bytes of the body and puts them back in front
// of the unread remainder.
func captureBody(r *http.Request, limit int) any {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mediaType == "multipart/form-data" {
		return fmt.Sprintf("[multipart body, %d bytes]", r.ContentLength)
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, int64(limit)+1))
	r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(buf), r.Body), Closer: r.Body}
	if err != nil {
		return "Could not read body"
	}

	truncated := len(buf) > limit
	if truncated {
		buf = buf[:limit]
	}

	text := redact.String(string(buf))
	if !truncated && json.Valid([]byte(text)) {
		return json.RawMessage(text)
	}
	if truncated {
		return text + "...(truncated)"
	}
	return text
}
