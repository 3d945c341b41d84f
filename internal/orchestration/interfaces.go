//go:generate mockgen -source=interfaces.go -destination=mocks/mock_backend.go -package=mocks

package orchestration

import (
	"context"

	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/timetable"
	"github.com/agbru/schedforge/internal/workbook"
)

// Backend is the remote timetable service. backend.Client implements it.
type Backend interface {
	// ListSheets returns the sheets of the uploaded workbook.
	ListSheets(ctx context.Context, f workbook.File) ([]timetable.Sheet, error)
	// ListTutorialGroups returns the tutorial groups of one sheet.
	ListTutorialGroups(ctx context.Context, f workbook.File, sheet string) ([]string, error)
	// Timetable generates the timetable of one group.
	Timetable(ctx context.Context, f workbook.File, sheet, group string) (timetable.Result, error)
}

// Observer is notified of every state the sequential driver passes through.
type Observer interface {
	Observe(s session.State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s session.State)

// Observe calls f(s).
func (f ObserverFunc) Observe(s session.State) { f(s) }

// NullObserver ignores every state.
type NullObserver struct{}

// Observe does nothing.
func (NullObserver) Observe(session.State) {}
