package shared

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mando-cx/mando-api/internal/apierr"
)

// Pagination defaults for list endpoints.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// ListQuery is the common query of list endpoints.
type ListQuery struct {
	Page    int    `json:"page" validate:"gte=1"`
	PerPage int    `json:"perPage" validate:"gte=1"`
	Filter  string `json:"filter"`
}

// Offset returns the index of the first item on the page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// ParseListQuery reads page, perPage and filter from the query string.
func ParseListQuery(r *http.Request) (ListQuery, error) {
	values := r.URL.Query()
	q := ListQuery{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		Filter:  strings.TrimSpace(values.Get("filter")),
	}

	var issues []apierr.Issue
	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			issues = append(issues, apierr.Issue{Path: []string{"page"}, Message: "Expected number"})
		}
		q.Page = n
	}
	if raw := values.Get("perPage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			issues = append(issues, apierr.Issue{Path: []string{"perPage"}, Message: "Expected number"})
		}
		q.PerPage = n
	}
	if len(issues) > 0 {
		return ListQuery{}, apierr.NewValidationError(issues...)
	}

	if err := ValidateRequest(q); err != nil {
		return ListQuery{}, err
	}
	return q, nil
}

// Page returns the slice of items selected by q.
func Page[T any](items []T, q ListQuery) []T {
	start := q.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + q.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
