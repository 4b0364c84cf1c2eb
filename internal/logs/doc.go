// Package logs reads and follows the daemon log file for `langengine logs`.
//
// Last reads the trailing lines with bounded memory. Follow then streams
// appended lines using fsnotify and restarts from the top when the file is
// truncated or replaced.
package logs
