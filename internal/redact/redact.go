// Package redact removes sensitive information from strings, headers, and
// URLs before they are logged. Request and outbound-call logging pass every
// header set and error message through this package so provider keys, bearer
// tokens, cookies, and e-mail addresses never reach the log sink.
package redact

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// Placeholders written in place of redacted content.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"

	// queryPlaceholder survives query encoding without escaping.
	queryPlaceholder = "REDACTED"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier rules may leave placeholders that later
// rules must not match.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(Bearer|ApiKey|Basic)\s+[A-Za-z0-9._~+/=-]{6,}`),
		replacement: "$1 " + RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb|redis|amqp)://[^@\s/]+@`),
		replacement: "$1://" + RedactedCredentialPlaceholder + "@",
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(password|passwd|pwd|secret_?key|secret|api_?key|access_?token|token)("?\s*[=:]\s*"?)[^\s"&,;]{3,}`,
		),
		replacement: "${1}${2}" + RedactionPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: RedactedEmailPlaceholder,
	},
}

// sensitiveHeaders are dropped wholesale from logged header sets.
var sensitiveHeaders = map[string]bool{
	"Authorization":       true,
	"Proxy-Authorization": true,
	"Cookie":              true,
	"Set-Cookie":          true,
	"X-Api-Key":           true,
	"X-Csrf-Token":        true,
}

// sensitiveQueryParams are masked by URL.
var sensitiveQueryParams = map[string]bool{
	"token":        true,
	"access_token": true,
	"api_key":      true,
	"apikey":       true,
	"key":          true,
	"secret":       true,
	"password":     true,
	"signature":    true,
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Header flattens h into a loggable map. Credential-bearing headers are
// replaced by a placeholder and every other value is passed through String.
func Header(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		canonical := http.CanonicalHeaderKey(name)
		if sensitiveHeaders[canonical] {
			out[canonical] = RedactionPlaceholder
			continue
		}
		out[canonical] = String(strings.Join(values, ", "))
	}
	return out
}

// URL masks userinfo passwords and sensitive query parameters in raw.
// Unparseable input is redacted as a plain string.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return String(raw)
	}

	if u.RawQuery != "" {
		query := u.Query()
		for k := range query {
			if sensitiveQueryParams[strings.ToLower(k)] {
				query[k] = []string{queryPlaceholder}
			}
		}
		u.RawQuery = query.Encode()
	}

	return u.Redacted()
}
