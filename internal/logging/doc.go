// Package logging assembles structured slog loggers and attribute helpers used
// across langengine.
//
// It owns the console (tint) and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so a language change can be
// traced from the bridge or IPC call through persistence and notification by
// its correlation ID. The package also provides a no-op logger for tests and
// for the shared library, which must never write to the host's stdout.
package logging
