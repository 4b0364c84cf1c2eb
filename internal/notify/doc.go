// Package notify tells the host application when the current language changes.
//
// Two transports are available: an ntfy topic (plain-text push) and a
// CloudEvents webhook carrying the full change event as JSON. NewFromConfig
// wires whichever are configured; with neither set, events are dropped.
package notify
