// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySheets], [DisplayGroups], [DisplayTimetable].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietTimetable], [FormatCounts].

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/timetable"
	"github.com/agbru/schedforge/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Quiet mode prints bare values suitable for scripting.
	Quiet bool
	// Width caps the rendered table width (0 for natural width).
	Width int
}

// DisplaySheets lists the sheets of the uploaded workbook, one per line.
func DisplaySheets(out io.Writer, sheets []timetable.Sheet, config OutputConfig) {
	if config.Quiet {
		for _, s := range sheets {
			fmt.Fprintf(out, "%d\t%s\n", s.Index, s.Name)
		}
		return
	}
	fmt.Fprintf(out, "\n%sSheets%s\n", ui.ColorBold(), ui.ColorReset())
	for _, s := range sheets {
		fmt.Fprintf(out, "  %s%3d%s  %s\n", ui.ColorPrimary(), s.Index, ui.ColorReset(), ui.Colorize(ui.ColorSecondary(), s.Name))
	}
	fmt.Fprintf(out, "\nPass %s--sheet <index>%s to list its tutorial groups.\n", ui.ColorInfo(), ui.ColorReset())
}

// DisplayGroups lists the tutorial groups of the selected sheet.
func DisplayGroups(out io.Writer, sheet string, groups []string, config OutputConfig) {
	if config.Quiet {
		for _, g := range groups {
			fmt.Fprintln(out, g)
		}
		return
	}
	fmt.Fprintf(out, "\n%sTutorial groups of %q%s\n", ui.ColorBold(), sheet, ui.ColorReset())
	for _, g := range groups {
		fmt.Fprintf(out, "  %s%s%s\n", ui.ColorPrimary(), g, ui.ColorReset())
	}
	fmt.Fprintf(out, "\nPass %s--group <name>%s to render a timetable.\n", ui.ColorInfo(), ui.ColorReset())
}

// DisplayTimetable draws the rendered timetable of s with its caption and
// category legend.
func DisplayTimetable(out io.Writer, s session.State, config OutputConfig) {
	g, ok := s.Grid()
	if !ok {
		return
	}
	if config.Quiet {
		fmt.Fprint(out, FormatQuietTimetable(g))
		return
	}
	theme := ui.GetCurrentTUITheme()
	fmt.Fprintf(out, "\n%s%s%s\n", ui.ColorBold(), s.Result().Caption(), ui.ColorReset())
	fmt.Fprintln(out, ui.RenderGrid(g, theme, config.Width))
	if legend := ui.RenderLegend(g, theme); legend != "" {
		fmt.Fprintln(out, legend)
	}
}

// FormatQuietTimetable renders g as tab separated rows: the header row
// first, then one row per time slot.
func FormatQuietTimetable(g timetable.Grid) string {
	var b strings.Builder
	b.WriteString(strings.Join(g.Header(), "\t"))
	b.WriteByte('\n')
	for _, row := range g.Rows {
		b.WriteString(row.Time)
		for _, c := range row.Cells {
			b.WriteByte('\t')
			b.WriteString(c.Code)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// DisplayExported confirms a written export file.
func DisplayExported(out io.Writer, path string, config OutputConfig) {
	if config.Quiet {
		return
	}
	fmt.Fprintf(out, "%s✓ Timetable saved to: %s%s%s\n",
		ui.ColorSuccess(), ui.ColorInfo(), path, ui.ColorReset())
}
