// Package api defines wire-format types and converters shared by the IPC and
// HTTP layers.
//
// # Key Types
//
// LanguageResponse: the active code plus an English description.
//
// SetLanguageRequest/SetLanguageResponse: a change request and its outcome.
// The response Status is the same integer the shared library returns, so
// every transport reports failures identically.
//
// DaemonStatus: runtime information about the daemon, its store, and its
// listeners.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Timestamps use RFC3339 with milliseconds.
package api
