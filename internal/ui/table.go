package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/schedforge/internal/timetable"
)

// CategoryStyle returns the cell style of a category under theme t.
func CategoryStyle(t TUITheme, c timetable.Category) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	switch c {
	case timetable.CategoryLecture:
		return s.Foreground(t.Lecture).Bold(true)
	case timetable.CategoryTutorial:
		return s.Foreground(t.Tutorial)
	case timetable.CategoryPractical:
		return s.Foreground(t.Practical)
	default:
		return s.Foreground(t.Text)
	}
}

// RenderGrid draws g as a bordered terminal table. Columns follow the
// backend day order; the first column holds the time slots. A width of
// zero lets the table size itself.
//
// Parameters:
//   - g: The grid to draw.
//   - t: The TUI theme supplying the category colours.
//   - width: The maximum table width, or 0 for the natural width.
//
// Returns:
//   - string: The rendered table.
func RenderGrid(g timetable.Grid, t TUITheme, width int) string {
	rows := make([][]string, len(g.Rows))
	for i, row := range g.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, row.Time)
		for _, c := range row.Cells {
			cells = append(cells, c.Code)
		}
		rows[i] = cells
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
	timeStyle := lipgloss.NewStyle().Foreground(t.Dim).Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers(g.Header()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return timeStyle
			case row < 0 || row >= len(g.Rows) || col-1 >= len(g.Rows[row].Cells):
				return CategoryStyle(t, timetable.CategoryNone)
			default:
				return CategoryStyle(t, g.Rows[row].Cells[col-1].Category)
			}
		})
	if width > 0 {
		tbl = tbl.Width(width)
	}
	return tbl.String()
}

// RenderLegend lists the categories present in g with their counts.
func RenderLegend(g timetable.Grid, t TUITheme) string {
	counts := g.Counts()
	parts := make([]string, 0, 3)
	for _, c := range []timetable.Category{
		timetable.CategoryLecture,
		timetable.CategoryTutorial,
		timetable.CategoryPractical,
	} {
		if counts[c] == 0 {
			continue
		}
		parts = append(parts, CategoryStyle(t, c).Render(fmt.Sprintf("%s ×%d", c, counts[c])))
	}
	return strings.Join(parts, " ")
}
