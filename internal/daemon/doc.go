// Package daemon coordinates the long-running langengine process.
//
// A daemon owns one stateful engine and shares it with every process that
// talks to it over the IPC socket or the optional HTTP API. Single-instance
// execution is enforced with a flock on the state directory lock file. For
// file-backed stores the daemon watches the settings document and reloads the
// engine when another process rewrites it.
//
// Keep orchestration here: transport code lives in ipc and httpapi, and the
// language state itself lives in engine.
package daemon
