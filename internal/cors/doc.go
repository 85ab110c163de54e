// Package cors decides which browser origins may call the API and applies
// that decision as CORS response headers.
//
// The Validator is a pure function of the request's Origin header and a
// static allow-list; it never rejects a well-formed origin. Middleware binds
// the Validator to github.com/go-chi/cors for header negotiation and
// preflight handling.
package cors
