// Package langaccess gives commands one way to read and change the current
// language whether or not a daemon is running.
//
// OpenWithFallback prefers the daemon socket and otherwise builds an
// in-process accessor from configuration. NewEngine is the single place an
// engine is assembled from config (store, notifiers, defaults) and is shared by
// the daemon runtime and the shared library.
package langaccess
