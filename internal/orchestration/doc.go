// Package orchestration drives the upload session: file → sheet list →
// tutorial groups → timetable. Handlers take the current session.State and
// return the next one together with the backend step to run, if any. Step
// outcomes are applied back onto the state, and outcomes from superseded
// requests are dropped.
package orchestration
