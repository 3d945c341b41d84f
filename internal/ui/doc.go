// Package ui provides theme and color support for the CLI and the TUI,
// including the dark/light toggle, and renders timetables as terminal
// tables.
package ui
