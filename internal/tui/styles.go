package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/schedforge/internal/ui"
)

// Style variables for the TUI.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	focusedPanelStyle  lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	labelStyle         lipgloss.Style
	cursorStyle        lipgloss.Style
	selectedStyle      lipgloss.Style
	dimStyle           lipgloss.Style
	captionStyle       lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	spinnerStyle       lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init, from Run() after InitTheme, and on every dark mode
// toggle.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Dim).
		Foreground(t.Text).
		Padding(0, 1)

	focusedPanelStyle = panelStyle.
		BorderForeground(t.Border)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Info).
		Bold(true)

	cursorStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	selectedStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	captionStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	spinnerStyle = lipgloss.NewStyle().
		Foreground(t.Accent)
}
