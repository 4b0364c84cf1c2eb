// Package httpapi serves the current language over HTTP for hosts that cannot
// link the shared library or speak JSON-RPC.
//
// Routes: GET /language, PUT /language ({"language":"fr_FR"}), GET /status,
// and the unauthenticated GET /healthz. Set responses carry the same integer
// status as the native setter.
package httpapi
