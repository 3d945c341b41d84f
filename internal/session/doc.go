// Package session holds the state of one upload session as an immutable
// value. Every transition returns a new State; callers replace their copy
// atomically, which keeps the file → sheet → group → timetable chain
// testable without a live interface.
package session
