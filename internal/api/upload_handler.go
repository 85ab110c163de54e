package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mando-cx/mando-api/internal/api/shared"
	"github.com/mando-cx/mando-api/internal/apierr"
	"github.com/mando-cx/mando-api/internal/metrics"
	"github.com/mando-cx/mando-api/internal/upload"
)

// FilesField is the multipart field that carries uploaded files.
const FilesField = "files"

// maxMultipartMemory is kept in memory; larger parts spill to temp files.
const maxMultipartMemory = 32 << 20

// UploadResponse lists the accepted files.
type UploadResponse struct {
	Files []upload.File `json:"files"`
}

// MimeTypesResponse is a page of accepted content types.
type MimeTypesResponse struct {
	Items   []string `json:"items"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"perPage"`
}

// UploadHandler handles upload validation requests
type UploadHandler struct {
	metrics *metrics.Collector
}

// NewUploadHandler creates a new UploadHandler. m may be nil.
func NewUploadHandler(m *metrics.Collector) *UploadHandler {
	return &UploadHandler{metrics: m}
}

// Assets handles POST /api/uploads/assets requests
func (h *UploadHandler) Assets(w http.ResponseWriter, r *http.Request) error {
	return h.check(w, r, upload.AssetRules)
}

// Processed handles POST /api/uploads/processed requests
func (h *UploadHandler) Processed(w http.ResponseWriter, r *http.Request) error {
	return h.check(w, r, upload.ProcessedRules)
}

func (h *UploadHandler) check(w http.ResponseWriter, r *http.Request, rules upload.Rules) error {
	limit := rules.MaxFileSize*upload.MaxFiles + maxMultipartMemory
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &apierr.HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "Request body too large", Cause: err}
		}
		return &apierr.HTTPError{Status: http.StatusBadRequest, Message: "Malformed multipart body", Cause: err}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files, err := upload.Describe(r.MultipartForm.File[FilesField])
	if err != nil {
		return apierr.Wrap(err, apierr.CodeInternalServerError, "Failed to read uploaded files")
	}

	if err := rules.Check(files); err != nil {
		h.count(rules.Kind, "rejected", len(files))
		return err
	}
	h.count(rules.Kind, "accepted", len(files))

	shared.RespondWithJSON(w, r, http.StatusOK, UploadResponse{Files: files})
	return nil
}

func (h *UploadHandler) count(kind upload.Kind, outcome string, n int) {
	if h.metrics == nil || n == 0 {
		return
	}
	h.metrics.UploadFiles.WithLabelValues(string(kind), outcome).Add(float64(n))
}

// MimeTypes handles GET /api/uploads/mime-types requests
func (h *UploadHandler) MimeTypes(w http.ResponseWriter, r *http.Request) error {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		return apierr.NewValidationError(apierr.Issue{Path: []string{"kind"}, Message: "Required"})
	}
	rules, ok := upload.RulesFor(upload.Kind(kind))
	if !ok {
		return apierr.NewValidationError(apierr.Issue{
			Path:    []string{"kind"},
			Message: "Invalid enum value. Expected asset | processed",
		})
	}

	q, err := shared.ParseListQuery(r)
	if err != nil {
		return err
	}

	types := rules.MimeTypes()
	if q.Filter != "" {
		needle := strings.ToLower(q.Filter)
		filtered := types[:0]
		for _, t := range types {
			if strings.Contains(t, needle) {
				filtered = append(filtered, t)
			}
		}
		types = filtered
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MimeTypesResponse{
		Items:   shared.Page(types, q),
		Total:   len(types),
		Page:    q.Page,
		PerPage: q.PerPage,
	})
	return nil
}
