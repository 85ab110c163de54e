// Package apierr defines the API's closed error taxonomy and the classifier
// that turns any error reaching the request boundary into the uniform
// {code, message, requestId} response body.
//
// Three error shapes are recognised: *Error (raised by the application with an
// explicit Code), *HTTPError (a framework-level failure that only knows its
// status), and *ValidationError (structured request validation failures).
// Everything else is classified as INTERNAL_SERVER_ERROR.
package apierr
