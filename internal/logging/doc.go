// Package logging provides a unified logging interface for the timetable client.
// It abstracts the underlying logging implementation so the orchestrator, the
// backend client and both front ends log through the same fields while the TUI
// can redirect output away from the terminal it owns.
package logging
