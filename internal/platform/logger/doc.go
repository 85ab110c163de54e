// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, and threads request-scoped loggers through
// context.Context so handlers and middleware log with the same request attributes.
package logger
