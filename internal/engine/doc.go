// Package engine implements the language state accessor behind the native
// boundary.
//
// Two accessors satisfy the same Accessor interface. Placeholder preserves the
// historical contract exactly: the getter always reports en_US and the setter
// accepts and discards anything, reporting success. Engine is the stateful
// replacement: one owned code guarded by a mutex, written through to a Store
// before it becomes visible, and announced to a Notifier after it changes.
//
// Failures never cross the boundary as Go errors; SetCurrentLanguage maps them
// onto Status codes where zero means success.
package engine
