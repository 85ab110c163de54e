package apierr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue is a single validation failure located by its field path.
type Issue struct {
	Path    []string
	Message string
}

// String formats the issue as "<path>: <message>", with path segments
// joined by dots.
func (i Issue) String() string {
	if len(i.Path) == 0 {
		return i.Message
	}
	return strings.Join(i.Path, ".") + ": " + i.Message
}

// ValidationError is a structured request validation failure.
// Issues are ordered; the first one is what clients see.
type ValidationError struct {
	Issues []Issue
	// Cause is the raw failure, used when no issue could be extracted.
	Cause error
}

// NewValidationError creates a ValidationError from issues.
func NewValidationError(issues ...Issue) *ValidationError {
	return &ValidationError{Issues: issues}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return "validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

// Unwrap returns the raw failure.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// IsValidation reports whether err carries a structured validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var fe validator.ValidationErrors
	return errors.As(err, &fe)
}

// ValidationMessage returns the client-facing message for a validation
// failure: the first issue formatted as "<path>: <message>", or the raw
// error text when no issue can be extracted.
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) && len(ve.Issues) > 0 {
		return ve.Issues[0].String()
	}

	var fe validator.ValidationErrors
	if errors.As(err, &fe) && len(fe) > 0 {
		return IssueFromFieldError(fe[0]).String()
	}

	return err.Error()
}

// FromValidator converts validator failures into a ValidationError.
// Errors of any other type are wrapped as the raw cause.
func FromValidator(err error) *ValidationError {
	var fe validator.ValidationErrors
	if !errors.As(err, &fe) {
		return &ValidationError{Cause: err}
	}

	issues := make([]Issue, 0, len(fe))
	for _, f := range fe {
		issues = append(issues, IssueFromFieldError(f))
	}
	return &ValidationError{Issues: issues, Cause: err}
}

// IssueFromFieldError builds an Issue from a single validator failure.
// The root struct name is dropped from the namespace and index brackets
// become path segments, so "TriggerRequest.to.email" yields "to.email" and
// "Request.files[0]" yields "files.0".
func IssueFromFieldError(f validator.FieldError) Issue {
	return Issue{
		Path:    namespacePath(f.Namespace()),
		Message: tagMessage(f),
	}
}

func namespacePath(ns string) []string {
	if ns == "" {
		return nil
	}

	// Drop the root struct name.
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	} else {
		return nil
	}

	ns = strings.NewReplacer("[", ".", "]", "").Replace(ns)

	var path []string
	for _, seg := range strings.Split(ns, ".") {
		if seg != "" {
			path = append(path, seg)
		}
	}
	return path
}

func tagMessage(f validator.FieldError) string {
	switch f.Tag() {
	case "required", "required_if", "required_with", "required_without":
		return "Required"
	case "email":
		return "Invalid email"
	case "url", "http_url":
		return "Invalid url"
	case "uuid", "uuid4":
		return "Invalid uuid"
	case "min", "gte":
		return fmt.Sprintf("Must be at least %s", f.Param())
	case "max", "lte":
		return fmt.Sprintf("Must be at most %s", f.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", f.Param())
	case "lt":
		return fmt.Sprintf("Must be less than %s", f.Param())
	case "len":
		return fmt.Sprintf("Must have length %s", f.Param())
	case "oneof":
		return fmt.Sprintf("Invalid enum value. Expected %s", strings.Join(strings.Fields(f.Param()), " | "))
	default:
		return fmt.Sprintf("Failed on the '%s' rule", f.Tag())
	}
}
