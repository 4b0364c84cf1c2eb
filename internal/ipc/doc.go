// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management and the request/response DTOs, which
// alias the api package types so the socket and HTTP transports stay in step.
// The client dials with a short timeout so CLI commands can fall back to a
// local engine when the daemon is offline.
package ipc
