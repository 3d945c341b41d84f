// Package backend is the HTTP client for the timetable service.
//
// The service exposes three POST endpoints, each taking a multipart form that
// carries the uploaded workbook:
//
//	/list_sheets/           file                                -> {"sheets": [{"index", "name"}]}
//	/list_tutorial_groups/  file, sheet_choice                  -> {"tutorial_groups": [...]}
//	/timetable/             file, sheet_choice, tutorial_group  -> timetable.Result
//
// Failures are reported as apperrors.TransportError, StatusError or
// DecodeError. There is no retry, and no timeout beyond the caller's context.
package backend
