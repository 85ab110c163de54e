// Package middleware provides the HTTP middleware of the request pipeline:
// request ids, panic recovery, metrics, access and request logging, secure
// headers and Server-Timing.
package middleware
