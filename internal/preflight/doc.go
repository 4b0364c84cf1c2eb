// Package preflight provides readiness checks for the filesystem paths
// langengine depends on.
//
// These checks run in two contexts:
//   - The daemon calls RunAll before acquiring its lock so a read-only state
//     directory fails fast instead of on the first language change.
//   - The CLI "config validate" and "status" commands render the results.
//
// Checks for the store location are skipped for the memory backend.
package preflight
