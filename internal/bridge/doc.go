// Package bridge holds the accessor served across the C boundary.
//
// A Bridge starts on the placeholder accessor: the getter reports en_US and
// the setter reports success without changing anything. Configure swaps in
// the stateful engine when language.mode is "state". The cgo layer in
// cmd/liblangengine is a thin shim over a single process-wide Bridge.
package bridge
