package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/schedforge/internal/config"
	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/orchestration"
	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/ui"
)

// Focus identifies the section receiving list and enter keys.
type Focus int

const (
	FocusFile Focus = iota
	FocusSheets
	FocusGroups
	FocusTimetable
	focusCount
)

func (f Focus) next() Focus { return (f + 1) % focusCount }

func (f Focus) prev() Focus { return (f + focusCount - 1) % focusCount }

// pending holds selections given on the command line, applied as soon as
// the matching list arrives.
type pending struct {
	sheet string
	group string
}

// Model is the root bubbletea model for the TUI.
type Model struct {
	header  HeaderModel
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keymap  KeyMap

	orch   *orchestration.Orchestrator
	state  session.State
	ctx    context.Context
	cancel context.CancelFunc

	focused     Focus
	sheetCursor int
	groupCursor int
	pending     pending
	initialFile string
	exportPath  string

	width  int
	height int
}

// NewModel creates a new TUI model. Selections present in cfg are replayed
// once the model starts.
func NewModel(parentCtx context.Context, o *orchestration.Orchestrator, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	in := textinput.New()
	in.Placeholder = "path/to/timetable.xlsx"
	in.Prompt = "› "
	in.CharLimit = 4096
	in.SetValue(cfg.File)
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	exportPath := cfg.PDF
	if exportPath == "" {
		exportPath = cfg.HTML
	}

	return Model{
		header:      NewHeaderModel(version),
		input:       in,
		spinner:     sp,
		help:        help.New(),
		keymap:      DefaultKeyMap(),
		orch:        o,
		state:       session.New(),
		ctx:         ctx,
		cancel:      cancel,
		pending:     pending{sheet: cfg.Sheet, group: cfg.Group()},
		initialFile: cfg.File,
		exportPath:  exportPath,
	}
}

// State returns the current session.
func (m Model) State() session.State { return m.state }

// Focused returns the focused section.
func (m Model) Focused() Focus { return m.focused }

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.initialFile != "" {
		cmds = append(cmds, loadFileCmd(m.initialFile))
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case FileLoadedMsg:
		if msg.Err != nil {
			m.state = m.state.WithStatus(errorText(msg.Err))
			return m, nil
		}
		s, step := m.orch.SelectFile(m.state, msg.File)
		if step == nil {
			return m, nil
		}
		m.state = s
		m.header.SetFile(msg.File.Name)
		m.header.Start()
		m.sheetCursor, m.groupCursor = 0, 0
		m.setFocus(FocusSheets)
		return m, runStepCmd(m.ctx, m.orch, step)

	case OutcomeMsg:
		return m.applyOutcome(msg.Outcome)

	case ExportedMsg:
		if msg.Err != nil {
			m.state = m.state.WithStatus(errorText(msg.Err))
			return m, nil
		}
		m.state = m.state.WithStatus(fmt.Sprintf("Saved %s", msg.Path))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) applyOutcome(out orchestration.Outcome) (tea.Model, tea.Cmd) {
	if !m.state.Current(out.Generation) {
		m.state = m.orch.Apply(m.state, out)
		return m, nil
	}
	m.state = m.orch.Apply(m.state, out)
	m.header.SetDone()
	if out.Err != nil {
		return m, nil
	}

	switch out.Kind {
	case orchestration.StepSheets:
		m.sheetCursor = 0
		if v := m.pending.sheet; v != "" {
			m.pending.sheet = ""
			if sh, ok := m.state.LookupSheet(v); ok {
				return m.selectSheet(strconv.Itoa(sh.Index))
			}
		}
	case orchestration.StepGroups:
		m.groupCursor = 0
		m.setFocus(FocusGroups)
		if g := m.pending.group; g != "" {
			m.pending.group = ""
			for i, opt := range m.state.GroupOptions() {
				if opt.Value == g {
					m.groupCursor = i
					return m.selectGroup(g)
				}
			}
		}
	case orchestration.StepTimetable:
		m.setFocus(FocusTimetable)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.quit()

	case key.Matches(msg, m.keymap.Reset):
		return m.reset()

	case key.Matches(msg, m.keymap.Theme):
		ui.ToggleDark()
		initTUIStyles()
		m.spinner.Style = spinnerStyle
		return m, nil

	case key.Matches(msg, m.keymap.Export):
		return m, exportCmd(m.orch, m.state, m.exportPath)

	case key.Matches(msg, m.keymap.Generate):
		return m.submit()

	case key.Matches(msg, m.keymap.Next):
		cmd := m.setFocus(m.focused.next())
		return m, cmd

	case key.Matches(msg, m.keymap.Prev):
		cmd := m.setFocus(m.focused.prev())
		return m, cmd
	}

	if m.focused == FocusFile {
		switch {
		case key.Matches(msg, m.keymap.Select):
			return m, loadFileCmd(strings.TrimSpace(m.input.Value()))
		case msg.Type == tea.KeyEsc:
			return m.quit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.Select):
		return m.selectAtCursor()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.state = m.orch.Reset(m.state)
	m.header.Reset()
	m.input.Reset()
	m.sheetCursor, m.groupCursor = 0, 0
	m.pending = pending{}
	cmd := m.setFocus(FocusFile)
	return m, cmd
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focused = f
	if f == FocusFile {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) moveCursor(delta int) {
	switch m.focused {
	case FocusSheets:
		m.sheetCursor = clamp(m.sheetCursor+delta, len(m.state.SheetOptions()))
	case FocusGroups:
		m.groupCursor = clamp(m.groupCursor+delta, len(m.state.GroupOptions()))
	}
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}

func (m Model) selectAtCursor() (tea.Model, tea.Cmd) {
	switch m.focused {
	case FocusSheets:
		opts := m.state.SheetOptions()
		if m.sheetCursor < len(opts) {
			return m.selectSheet(opts[m.sheetCursor].Value)
		}
	case FocusGroups:
		opts := m.state.GroupOptions()
		if m.groupCursor < len(opts) {
			return m.selectGroup(opts[m.groupCursor].Value)
		}
	}
	return m, nil
}

func (m Model) selectSheet(value string) (tea.Model, tea.Cmd) {
	s, step := m.orch.SelectSheet(m.state, value)
	if step == nil {
		return m, nil
	}
	m.state = s
	m.groupCursor = 0
	m.header.Start()
	return m, runStepCmd(m.ctx, m.orch, step)
}

// selectGroup chooses g and generates its timetable right away.
func (m Model) selectGroup(g string) (tea.Model, tea.Cmd) {
	m.state = m.orch.SelectGroup(m.state, g)
	return m.submit()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	s, step := m.orch.Submit(m.state)
	m.state = s
	if step == nil {
		return m, nil
	}
	m.header.Start()
	return m, runStepCmd(m.ctx, m.orch, step)
}

func errorText(err error) string {
	var ve apperrors.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

// View renders the whole screen.
func (m Model) View() string {
	file := m.panel(FocusFile, labelStyle.Render("Workbook")+"\n"+m.input.View())

	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(FocusSheets, m.renderList("Sheet", m.state.SheetOptions(), m.sheetCursor, m.state.Sheet(), FocusSheets)),
		m.panel(FocusGroups, m.renderList("Tutorial group", m.state.GroupOptions(), m.groupCursor, m.state.Group(), FocusGroups)),
	)

	parts := []string{m.header.View(), file, lists, m.statusLine()}
	if g, ok := m.state.Grid(); ok {
		theme := ui.GetCurrentTUITheme()
		tbl := ui.RenderGrid(g, theme, m.width-4)
		if legend := ui.RenderLegend(g, theme); legend != "" {
			tbl += "\n" + legend
		}
		parts = append(parts, m.panel(FocusTimetable, tbl))
	}
	parts = append(parts, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) panel(f Focus, body string) string {
	if m.focused == f {
		return focusedPanelStyle.Render(body)
	}
	return panelStyle.Render(body)
}

func (m Model) renderList(title string, opts []session.Option, cursor int, selected string, f Focus) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(title))
	if len(opts) == 0 {
		b.WriteString("\n" + dimStyle.Render("(none)"))
		return b.String()
	}
	for i, opt := range opts {
		b.WriteByte('\n')
		marker := "  "
		if m.focused == f && i == cursor {
			marker = cursorStyle.Render("> ")
		}
		label := opt.Label
		if opt.Value == selected {
			label = selectedStyle.Render(label + " ✓")
		}
		b.WriteString(marker + label)
	}
	return b.String()
}

func (m Model) statusLine() string {
	status := m.state.Status()
	switch {
	case m.state.Loading():
		return m.spinner.View() + " " + statusRunningStyle.Render(status)
	case status == "":
		return dimStyle.Render("Select a spreadsheet and press enter.")
	case strings.HasPrefix(status, "Failed") || status == orchestration.StatusMissingInput ||
		status == orchestration.StatusNoTimetable:
		return statusErrorStyle.Render(status)
	case m.state.Rendered():
		return captionStyle.Render(status)
	default:
		return statusDoneStyle.Render(status)
	}
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
//
// Parameters:
//   - ctx: The parent context; canceling it ends the program.
//   - o: The orchestrator that issues the backend calls.
//   - cfg: The configuration; file, sheet and groups are replayed as selections.
//   - version: The version shown in the header.
//
// Returns:
//   - int: The exit code for the application.
func Run(ctx context.Context, o *orchestration.Orchestrator, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, o, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
