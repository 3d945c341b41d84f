package session

import (
	"strconv"
	"strings"

	"github.com/agbru/schedforge/internal/timetable"
	"github.com/agbru/schedforge/internal/workbook"
)

// Stage is the position of a session in the selection chain.
type Stage int

const (
	StageIdle Stage = iota
	StageFileSelected
	StageSheetsLoaded
	StageSheetSelected
	StageGroupsLoaded
	StageGroupSelected
	StageTimetableRendered
)

var stageNames = [...]string{
	StageIdle:              "idle",
	StageFileSelected:      "file-selected",
	StageSheetsLoaded:      "sheets-loaded",
	StageSheetSelected:     "sheet-selected",
	StageGroupsLoaded:      "groups-loaded",
	StageGroupSelected:     "group-selected",
	StageTimetableRendered: "timetable-rendered",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "stage(" + strconv.Itoa(int(s)) + ")"
	}
	return stageNames[s]
}

// Option is one entry of a selection list.
type Option struct {
	Value string
	Label string
}

// State is a snapshot of a session. The zero value is an idle session.
//
// Generation increases whenever a change invalidates work that is still in
// flight: a new file, sheet or group, a new request and Reset. Responses
// tagged with an older generation must not be applied.
type State struct {
	stage      Stage
	generation uint64

	file   workbook.File
	sheets []timetable.Sheet
	sheet  string
	groups []string
	group  string

	result   timetable.Result
	grid     timetable.Grid
	rendered bool

	status  string
	loading bool
}

// New returns an idle session.
func New() State { return State{} }

func (s State) Stage() Stage { return s.stage }
func (s State) Generation() uint64 { return s.generation }
func (s State) File() workbook.File { return s.file }
func (s State) HasFile() bool { return !s.file.Empty() }
func (s State) Sheet() string { return s.sheet }
func (s State) Group() string { return s.group }
func (s State) Status() string { return s.status }
func (s State) Loading() bool { return s.loading }
func (s State) Rendered() bool { return s.rendered }
func (s State) Result() timetable.Result { return s.result }

// Sheets returns a copy of the loaded sheet descriptors.
func (s State) Sheets() []timetable.Sheet {
	return append([]timetable.Sheet(nil), s.sheets...)
}

// Groups returns a copy of the loaded tutorial groups.
func (s State) Groups() []string {
	return append([]string(nil), s.groups...)
}

// Grid returns the rendered table and whether one is present.
func (s State) Grid() (timetable.Grid, bool) {
	return s.grid, s.rendered
}

// SheetOptions lists the sheet selection entries in backend order. The value
// of each option is the sheet index, the label is its name.
func (s State) SheetOptions() []Option {
	opts := make([]Option, len(s.sheets))
	for i, sh := range s.sheets {
		opts[i] = Option{Value: strconv.Itoa(sh.Index), Label: sh.Name}
	}
	return opts
}

// GroupOptions lists the group selection entries in backend order.
func (s State) GroupOptions() []Option {
	opts := make([]Option, len(s.groups))
	for i, g := range s.groups {
		opts[i] = Option{Value: g, Label: g}
	}
	return opts
}

// LookupSheet finds a loaded sheet by index value or, failing that, by
// case-insensitive name.
func (s State) LookupSheet(v string) (timetable.Sheet, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return timetable.Sheet{}, false
	}
	if idx, err := strconv.Atoi(v); err == nil {
		for _, sh := range s.sheets {
			if sh.Index == idx {
				return sh, true
			}
		}
	}
	for _, sh := range s.sheets {
		if strings.EqualFold(sh.Name, v) {
			return sh, true
		}
	}
	return timetable.Sheet{}, false
}

// SheetName returns the display name of the selected sheet, or the raw
// selection value when the sheet list does not contain it.
func (s State) SheetName() string {
	if sh, ok := s.LookupSheet(s.sheet); ok {
		return sh.Name
	}
	return s.sheet
}

// Ready reports whether file, sheet and group are all selected.
func (s State) Ready() bool {
	return s.HasFile() && s.sheet != "" && s.group != ""
}

// SelectFile replaces the selected file and clears everything downstream of
// it. An empty file leaves the state untouched and reports false.
func (s State) SelectFile(f workbook.File) (State, bool) {
	if f.Empty() {
		return s, false
	}
	return State{
		stage:      StageFileSelected,
		generation: s.generation + 1,
		file:       f,
	}, true
}

// SelectSheet records the chosen sheet and clears the group list and any
// rendered timetable. It requires a selected file and a non-empty value.
func (s State) SelectSheet(v string) (State, bool) {
	v = strings.TrimSpace(v)
	if !s.HasFile() || v == "" {
		return s, false
	}
	next := s.clearFrom(StageSheetSelected)
	next.sheet = v
	return next, true
}

// SelectGroup records the chosen tutorial group and clears any rendered
// timetable. It requires a selected sheet and a non-empty value.
func (s State) SelectGroup(g string) (State, bool) {
	g = strings.TrimSpace(g)
	if !s.HasFile() || s.sheet == "" || g == "" {
		return s, false
	}
	next := s.clearFrom(StageGroupSelected)
	next.group = g
	return next, true
}

// WithSheets stores the sheet list returned for the current file.
func (s State) WithSheets(sheets []timetable.Sheet) State {
	next := s.settled()
	next.sheets = append([]timetable.Sheet(nil), sheets...)
	next.stage = StageSheetsLoaded
	return next
}

// WithGroups stores the tutorial groups returned for the current sheet.
func (s State) WithGroups(groups []string) State {
	next := s.settled()
	next.groups = append([]string(nil), groups...)
	next.stage = StageGroupsLoaded
	return next
}

// WithResult renders a timetable result. It is the only way into
// StageTimetableRendered.
func (s State) WithResult(r timetable.Result) State {
	next := s.settled()
	next.result = r
	next.grid = timetable.BuildGrid(r)
	next.rendered = true
	next.stage = StageTimetableRendered
	return next
}

// Begin marks a request as started. Any rendered timetable is cleared and
// the generation advances so that earlier requests become stale.
func (s State) Begin(status string) State {
	next := s
	next.generation++
	next.loading = true
	next.status = status
	if next.rendered {
		next.result = timetable.Result{}
		next.grid = timetable.Grid{}
		next.rendered = false
		next.stage = StageGroupSelected
	}
	return next
}

// Fail ends the current request with a status message. Selections and lists
// already loaded are kept.
func (s State) Fail(status string) State {
	next := s.settled()
	next.status = status
	return next
}

// WithStatus replaces the status line.
func (s State) WithStatus(status string) State {
	next := s
	next.status = status
	return next
}

// Reset returns to an idle session. The generation keeps increasing so that
// responses to requests issued before the reset are dropped.
func (s State) Reset() State {
	return State{generation: s.generation + 1}
}

// Current reports whether a response tagged with gen still belongs to this
// state.
func (s State) Current(gen uint64) bool {
	return gen == s.generation
}

func (s State) settled() State {
	next := s
	next.loading = false
	next.status = ""
	return next
}

// clearFrom drops every selection and result at or after stage and advances
// the generation.
func (s State) clearFrom(stage Stage) State {
	next := s
	next.generation++
	next.loading = false
	next.status = ""
	next.result = timetable.Result{}
	next.grid = timetable.Grid{}
	next.rendered = false
	if stage <= StageSheetSelected {
		next.groups = nil
		next.group = ""
	}
	if stage <= StageGroupSelected {
		next.group = ""
	}
	next.stage = stage
	return next
}
