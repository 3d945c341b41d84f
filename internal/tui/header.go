package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/schedforge/internal/format"
	"github.com/agbru/schedforge/internal/ui"
)

// HeaderModel renders the top bar: title, version, selected file, theme and
// the duration of the latest backend request.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	file      string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// Start restarts the request timer.
func (h *HeaderModel) Start() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetDone freezes the request timer at the current time.
func (h *HeaderModel) SetDone() {
	if !h.startTime.IsZero() && h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// Reset clears the timer and the file name.
func (h *HeaderModel) Reset() {
	h.startTime = time.Time{}
	h.endTime = time.Time{}
	h.file = ""
}

// SetFile records the name of the selected workbook.
func (h *HeaderModel) SetFile(name string) {
	h.file = name
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "schedforge"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")
	row := titleStyle.Render(titleText)

	if h.file != "" {
		row += pipe + h.file
	}
	if !h.startTime.IsZero() {
		var duration time.Duration
		if !h.endTime.IsZero() {
			duration = h.endTime.Sub(h.startTime)
		} else {
			duration = time.Since(h.startTime)
		}
		row += pipe + elapsedStyle.Render(fmt.Sprintf("Last request: %s", format.FormatExecutionDuration(duration)))
	}

	theme := versionStyle.Render(ui.GetCurrentTheme().Name)
	gap := max(h.width-2-lipgloss.Width(row)-lipgloss.Width(theme), 1)
	row += spaces(gap) + theme

	return headerStyle.Width(h.width).Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
