package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mando-cx/mando-api/internal/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type triggerBody struct {
	Name string `json:"name" validate:"required"`
	To   struct {
		Email string `json:"email" validate:"omitempty,email"`
	} `json:"to"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "valid json",
			requestBody: `{"name": "welcome", "to": {"email": "a@b.co"}}`,
		},
		{
			name:        "invalid json",
			requestBody: `{"name": "welcome",}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Malformed JSON in request body",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Request body is empty",
		},
		{
			name:        "oversized body",
			requestBody: `{"name": "` + strings.Repeat("x", MaxJSONBodyBytes) + `"}`,
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantMessage: "Request body too large",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.requestBody))
			w := httptest.NewRecorder()

			var body triggerBody
			err := DecodeJSON(w, req, &body)

			if tc.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, "welcome", body.Name)
				return
			}

			var httpErr *apierr.HTTPError
			require.True(t, errors.As(err, &httpErr), "expected *apierr.HTTPError, got %T", err)
			assert.Equal(t, tc.wantStatus, httpErr.Status)
			assert.Equal(t, tc.wantMessage, httpErr.Message)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	var body triggerBody
	body.To.Email = "not-an-email"

	err := ValidateRequest(&body)
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))

	var ve *apierr.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Issues, 2)
	assert.Equal(t, "name: Required", ve.Issues[0].String())
	assert.Equal(t, "to.email: Invalid email", ve.Issues[1].String())
}

type selfValidating struct{}

func (selfValidating) Validate() error { return errors.New("custom failure") }

func TestValidateRequestUsesValidateMethod(t *testing.T) {
	assert.EqualError(t, ValidateRequest(selfValidating{}), "custom failure")
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"to": {}}`))
	w := httptest.NewRecorder()

	var body triggerBody
	err := DecodeAndValidate(w, req, &body)

	require.Error(t, err)
	assert.Equal(t, "name: Required", apierr.ValidationMessage(err))
}
