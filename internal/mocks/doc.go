// Package mocks provides hand-written test doubles for the interfaces the
// HTTP handlers depend on. Each mock exposes Fn fields for custom behaviour,
// default return values, and call tracking.
package mocks
