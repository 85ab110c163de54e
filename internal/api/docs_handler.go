package api

import (
	"net/http"

	"github.com/mando-cx/mando-api/internal/api/shared"
	"github.com/mando-cx/mando-api/internal/openapi"
)

// DocsHandler serves the OpenAPI document.
type DocsHandler struct {
	options openapi.Options
}

// NewDocsHandler creates a new DocsHandler
func NewDocsHandler(options openapi.Options) *DocsHandler {
	return &DocsHandler{options: options}
}

// OpenAPI handles GET /api/openapi.json requests. The server URL is the
// origin the caller used.
func (h *DocsHandler) OpenAPI(w http.ResponseWriter, r *http.Request) error {
	shared.RespondWithJSON(w, r, http.StatusOK, openapi.Build(h.options, openapi.OriginURL(r)))
	return nil
}
