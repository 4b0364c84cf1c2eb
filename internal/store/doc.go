// Package store persists the current language code.
//
// Where the code should live is a deployment decision, so the backend is
// chosen in configuration: Memory for a process-local value (the historical
// fallback), File for a settings document shared with the host application,
// and SQLite for hosts that already keep preferences in a database. Every
// backend satisfies Store; Open builds the configured one.
package store
