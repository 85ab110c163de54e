package apierr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type signupRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type recipient struct {
	Email string `json:"email" validate:"required,email"`
}

type nestedRequest struct {
	To    recipient `json:"to"`
	Files []struct {
		Name string `json:"name" validate:"required"`
	} `json:"files" validate:"dive"`
	Kind string `json:"kind" validate:"omitempty,oneof=asset processed"`
}

func TestValidationMessageFromValidator(t *testing.T) {
	v := newJSONValidator()

	err := v.Struct(signupRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "email: Invalid email", ValidationMessage(err))

	err = v.Struct(signupRequest{})
	assert.Equal(t, "email: Required", ValidationMessage(err))
}

func TestValidationMessageNestedPath(t *testing.T) {
	v := newJSONValidator()

	req := nestedRequest{To: recipient{Email: "x"}}
	assert.Equal(t, "to.email: Invalid email", ValidationMessage(v.Struct(req)))

	req = nestedRequest{To: recipient{Email: "a@b.co"}}
	req.Files = append(req.Files, struct {
		Name string `json:"name" validate:"required"`
	}{})
	assert.Equal(t, "files.0.name: Required", ValidationMessage(v.Struct(req)))

	req.Files = nil
	req.Kind = "other"
	assert.Equal(t, "kind: Invalid enum value. Expected asset | processed", ValidationMessage(v.Struct(req)))
}

func TestValidationMessageTakesFirstIssue(t *testing.T) {
	err := NewValidationError(
		Issue{Path: []string{"files", "0"}, Message: "File type is not allowed"},
		Issue{Path: []string{"files", "1"}, Message: "File size is bigger that 10MB"},
	)

	assert.Equal(t, "files.0: File type is not allowed", ValidationMessage(err))
	assert.Equal(t, "files.0: File type is not allowed; files.1: File size is bigger that 10MB", err.Error())

	wrapped := fmt.Errorf("upload rejected: %w", err)
	assert.True(t, IsValidation(wrapped))
	assert.Equal(t, "files.0: File type is not allowed", ValidationMessage(wrapped))
}

func TestValidationMessageFallsBackToRawText(t *testing.T) {
	raw := errors.New("unexpected EOF")
	err := &ValidationError{Cause: raw}

	assert.True(t, IsValidation(err))
	assert.Equal(t, "unexpected EOF", ValidationMessage(err))
	assert.ErrorIs(t, err, raw)

	assert.Equal(t, "plain failure", ValidationMessage(errors.New("plain failure")))
	assert.False(t, IsValidation(errors.New("plain failure")))
}

func TestIssueWithoutPath(t *testing.T) {
	assert.Equal(t, "Min File count are 1", Issue{Message: "Min File count are 1"}.String())
}

func TestFromValidator(t *testing.T) {
	v := newJSONValidator()

	ve := FromValidator(v.Struct(nestedRequest{}))
	require.Len(t, ve.Issues, 1)
	assert.Equal(t, []string{"to", "email"}, ve.Issues[0].Path)
	assert.Equal(t, "Required", ve.Issues[0].Message)

	other := errors.New("boom")
	ve = FromValidator(other)
	assert.Empty(t, ve.Issues)
	assert.Equal(t, "boom", ve.Error())
}
