package timetable

// TimeHeader is the label of the leading column.
const TimeHeader = "Time"

// Row is one time slot across all days.
type Row struct {
	Time  string
	Cells []Cell
}

// Grid is the render model of a Result: columns are days in backend order,
// rows are time slots in the order given.
type Grid struct {
	Days []string
	Rows []Row
}

// BuildGrid lays out r for rendering. A slot missing from a day yields an
// empty cell; days never appear unless the backend sent them.
func BuildGrid(r Result) Grid {
	days := r.Timetable.Days()
	g := Grid{Days: days, Rows: make([]Row, 0, len(r.TimeSlots))}
	for _, slot := range r.TimeSlots {
		row := Row{Time: slot, Cells: make([]Cell, len(days))}
		for i, day := range days {
			row.Cells[i] = r.Timetable.Lookup(day, slot)
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// Header returns the header row: "Time" followed by the days.
func (g Grid) Header() []string {
	return append([]string{TimeHeader}, g.Days...)
}

// Cell returns the cell at (slot, day), or false when either is absent.
func (g Grid) Cell(slot, day string) (Cell, bool) {
	col := -1
	for i, d := range g.Days {
		if d == day {
			col = i
			break
		}
	}
	if col < 0 {
		return Cell{}, false
	}
	for _, row := range g.Rows {
		if row.Time == slot {
			return row.Cells[col], true
		}
	}
	return Cell{}, false
}

// Counts tallies non-empty cells per category.
func (g Grid) Counts() map[Category]int {
	counts := make(map[Category]int)
	for _, row := range g.Rows {
		for _, c := range row.Cells {
			if c.Code != "" {
				counts[c.Category]++
			}
		}
	}
	return counts
}
