package api

import (
	"net/http"

	"github.com/mando-cx/mando-api/internal/api/shared"
)

// IndexResponse is the body of GET /api/.
type IndexResponse struct {
	Message string `json:"message"`
}

// Index handles GET /api/ requests
func Index(w http.ResponseWriter, r *http.Request) error {
	shared.RespondWithJSON(w, r, http.StatusOK, IndexResponse{Message: "Hello Mando!"})
	return nil
}

// Ping handles GET /api/ping requests
func Ping(w http.ResponseWriter, _ *http.Request) error {
	shared.RespondWithText(w, http.StatusOK, "pong")
	return nil
}

// Health handles GET /health requests
func Health(w http.ResponseWriter, _ *http.Request) {
	shared.RespondWithText(w, http.StatusOK, "OK")
}
