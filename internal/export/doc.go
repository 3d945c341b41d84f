// Package export writes a rendered timetable to a file: a landscape PDF
// document or a standalone HTML page.
package export
