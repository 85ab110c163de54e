// Package api handles incoming HTTP requests, request validation, and
// response formatting. Handlers return errors instead of writing error
// responses themselves; ErrorHandler is the single place where an error
// becomes the uniform JSON error body.
package api
