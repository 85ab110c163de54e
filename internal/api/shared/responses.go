package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// PrettyQueryParam switches JSON responses to indented output.
const PrettyQueryParam = "pretty"

// RespondWithJSON writes a JSON response with the given status code and data.
// The output is indented when the request's query contains "pretty".
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	if r != nil && r.URL.Query().Has(PrettyQueryParam) {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithText writes a plain text response.
func RespondWithText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write text response", "error", err)
	}
}
