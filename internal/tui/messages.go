package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/schedforge/internal/orchestration"
	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/workbook"
)

// FileLoadedMsg carries a workbook read from disk, or the reason it could
// not be read.
type FileLoadedMsg struct {
	File workbook.File
	Err  error
}

// OutcomeMsg carries the outcome of a backend step.
type OutcomeMsg struct {
	Outcome orchestration.Outcome
}

// ExportedMsg reports a finished download.
type ExportedMsg struct {
	Path string
	Err  error
}

// loadFileCmd reads path off the UI goroutine.
func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := workbook.Open(path)
		return FileLoadedMsg{File: f, Err: err}
	}
}

// runStepCmd executes step and returns its outcome. Staleness is decided
// when the outcome is applied, not here.
func runStepCmd(ctx context.Context, o *orchestration.Orchestrator, step *orchestration.Step) tea.Cmd {
	if step == nil {
		return nil
	}
	return func() tea.Msg {
		return OutcomeMsg{Outcome: o.Run(ctx, step)}
	}
}

// exportCmd writes the rendered timetable of s to path.
func exportCmd(o *orchestration.Orchestrator, s session.State, path string) tea.Cmd {
	return func() tea.Msg {
		written, err := o.Export(s, path)
		return ExportedMsg{Path: written, Err: err}
	}
}
