// Command langengine reads and changes the current language from the shell.
//
// `get` and `set` go through the daemon socket when a daemon answers and
// otherwise open the configured accessor in-process, so the same commands
// work with or without `langengine daemon start`. `set` exits non-zero when
// the returned status is non-zero.
package main
