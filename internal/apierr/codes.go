package apierr

import "net/http"

// Code is a stable, machine-readable error identifier.
// Clients program against these values; do not rename existing codes.
type Code string

// Error codes.
const (
	CodeBadRequest              Code = "BAD_REQUEST"
	CodeForbidden               Code = "FORBIDDEN"
	CodeInternalServerError     Code = "INTERNAL_SERVER_ERROR"
	CodeUsageExceeded           Code = "USAGE_EXCEEDED"
	CodeDisabled                Code = "DISABLED"
	CodeNotFound                Code = "NOT_FOUND"
	CodeNotUnique               Code = "NOT_UNIQUE"
	CodeRateLimited             Code = "RATE_LIMITED"
	CodeUnauthorized            Code = "UNAUTHORIZED"
	CodePreconditionFailed      Code = "PRECONDITION_FAILED"
	CodeInsufficientPermissions Code = "INSUFFICIENT_PERMISSIONS"
	CodeMethodNotAllowed        Code = "METHOD_NOT_ALLOWED"
	CodeExpired                 Code = "EXPIRED"
	CodeDeleteProtected         Code = "DELETE_PROTECTED"
)

var allCodes = []Code{
	CodeBadRequest,
	CodeForbidden,
	CodeInternalServerError,
	CodeUsageExceeded,
	CodeDisabled,
	CodeNotFound,
	CodeNotUnique,
	CodeRateLimited,
	CodeUnauthorized,
	CodePreconditionFailed,
	CodeInsufficientPermissions,
	CodeMethodNotAllowed,
	CodeExpired,
	CodeDeleteProtected,
}

// Codes returns every defined code in declaration order.
func Codes() []Code {
	out := make([]Code, len(allCodes))
	copy(out, allCodes)
	return out
}

// String implements fmt.Stringer.
func (c Code) String() string {
	return string(c)
}

// CodeToStatus returns the canonical HTTP status for a code.
// Unknown codes map to 500.
func CodeToStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeForbidden,
		CodeDisabled,
		CodeUnauthorized,
		CodeInsufficientPermissions,
		CodeUsageExceeded,
		CodeExpired:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeNotUnique:
		return http.StatusConflict
	case CodeDeleteProtected, CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// StatusToCode approximates a code for a bare HTTP status.
//
// Several codes share a status, so this is not the inverse of CodeToStatus:
// a 403 always comes back as FORBIDDEN, and any status other than
// 400/401/403/404/405 becomes INTERNAL_SERVER_ERROR.
func StatusToCode(status int) Code {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	default:
		return CodeInternalServerError
	}
}
