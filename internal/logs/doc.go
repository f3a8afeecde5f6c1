// Package logs reads the jukebox log file for the CLI.
//
// Stream prints the last N lines of a log and, in follow mode, polls for
// appended lines until the context is cancelled. Only complete lines are
// emitted; a partially written line is held back until its newline lands.
// An optional substring filter narrows output to a run id or event type.
package logs
