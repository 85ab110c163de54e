package cors

import (
	"net/url"
	"strings"
)

// Kind is the outcome of validating an origin.
type Kind int

const (
	// Reject means no CORS headers are emitted.
	Reject Kind = iota
	// Allow means the origin is echoed back with credentials enabled.
	Allow
	// AllowAny means the wildcard origin without credentials.
	AllowAny
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Allow:
		return "allow"
	case AllowAny:
		return "allow_any"
	default:
		return "reject"
	}
}

// Reasons reported alongside a verdict. They never change the verdict.
const (
	ReasonNoOrigin   = "no_origin"
	ReasonMalformed  = "malformed"
	ReasonLocal      = "local"
	ReasonRegistered = "registered"
	ReasonMirrored   = "mirrored"
)

// Result is the verdict for a single origin.
type Result struct {
	Kind Kind
	// Origin is the input, verbatim, when Kind is Allow.
	Origin string
	Reason string
}

// Validator checks origins against a fixed list of registered domains.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	domains []string
}

// NewValidator creates a Validator for the given registered domains.
// Entries are lower-cased; blanks and leading dots are dropped.
func NewValidator(domains []string) *Validator {
	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), ".")
		if d != "" {
			normalized = append(normalized, d)
		}
	}
	return &Validator{domains: normalized}
}

// Domains returns a copy of the registered domains.
func (v *Validator) Domains() []string {
	out := make([]string, len(v.domains))
	copy(out, v.domains)
	return out
}

// Validate decides whether origin may receive CORS headers.
//
// An absent origin allows any caller without credentials. An origin without
// a scheme, or with an http(s)-like scheme and no host, is rejected. Every other origin is allowed
// and echoed: local hosts and registered domains (including subdomains) are
// reported as such, anything else as mirrored.
func (v *Validator) Validate(origin string) Result {
	if strings.TrimSpace(origin) == "" {
		return Result{Kind: AllowAny, Reason: ReasonNoOrigin}
	}

	host, ok := hostname(origin)
	if !ok {
		return Result{Kind: Reject, Reason: ReasonMalformed}
	}

	if host == "localhost" || host == "127.0.0.1" {
		return Result{Kind: Allow, Origin: origin, Reason: ReasonLocal}
	}

	for _, domain := range v.domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return Result{Kind: Allow, Origin: origin, Reason: ReasonRegistered}
		}
	}

	return Result{Kind: Allow, Origin: origin, Reason: ReasonMirrored}
}

// specialSchemes require a host to form a valid URL.
var specialSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// hostname returns the lower-cased host of origin. Opaque origins such as
// "foo:bar" are well formed and have an empty host.
func hostname(origin string) (string, bool) {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" && specialSchemes[u.Scheme] {
		return "", false
	}
	return host, true
}
