// Package timetable holds the wire types returned by the timetable backend and
// the render model built from them.
//
// A Result carries the ordered time slots and a day -> slot -> course-code
// mapping. Day order is the order of keys in the backend's JSON object, so the
// Timetable type decodes the object by hand instead of into a Go map. Each
// course code is classified into a Category once, at decode time.
package timetable
