package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/format"
	"github.com/agbru/schedforge/internal/orchestration"
	"github.com/agbru/schedforge/internal/timetable"
	"github.com/agbru/schedforge/internal/ui"
)

// PresentBatchTable displays the batch summary with group names, durations,
// exported paths and status in a tabular layout. Uses manual padding to
// correctly handle ANSI color codes.
func PresentBatchTable(results []orchestration.GroupResult, paths map[string]string, out io.Writer) {
	fmt.Fprintf(out, "\n--- Batch Summary ---\n")

	maxNameLen := 5     // "Group" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Group))
		maxDurationLen = max(maxDurationLen, len(formatBatchDuration(res)))
	}

	fmt.Fprintf(out, "%sGroup%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorBold(), ui.ColorReset(), padRight("", maxNameLen-5),
		ui.ColorBold(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorBold(), ui.ColorReset())

	for _, res := range results {
		var status string
		switch {
		case res.Err != nil:
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorError(), res.Err, ui.ColorReset())
		case paths[res.Group] != "":
			status = fmt.Sprintf("%s✅ %s%s", ui.ColorSuccess(), paths[res.Group], ui.ColorReset()) + FormatCounts(res.Result)
		default:
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorSuccess(), ui.ColorReset()) + FormatCounts(res.Result)
		}
		duration := formatBatchDuration(res)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorPrimary(), res.Group, ui.ColorReset(), padRight("", maxNameLen-len(res.Group)),
			ui.ColorWarning(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// FormatCounts summarizes the classes of r per category, e.g. " (L×3 T×1)".
// An empty timetable yields "".
func FormatCounts(r timetable.Result) string {
	counts := timetable.BuildGrid(r).Counts()
	var parts []string
	for _, c := range []timetable.Category{timetable.CategoryLecture, timetable.CategoryTutorial, timetable.CategoryPractical} {
		if counts[c] > 0 {
			parts = append(parts, ui.Colorize(ui.ColorCategory(c), fmt.Sprintf("%s×%d", c.Letter(), counts[c])))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, " ") + ")"
}

func formatBatchDuration(res orchestration.GroupResult) string {
	return format.FormatExecutionDuration(res.Duration)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// HandleError prints err and returns the matching exit code.
//
// Parameters:
//   - err: The error to report; nil prints nothing.
//   - out: The io.Writer for the status line.
//
// Returns:
//   - int: The exit code from apperrors.ExitCodeFor, or ExitSuccess for nil.
func HandleError(err error, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	code := apperrors.ExitCodeFor(err)
	var validationErr apperrors.ValidationError
	switch code {
	case apperrors.ExitErrorTimeout:
		var timeoutErr apperrors.TimeoutError
		if errors.As(err, &timeoutErr) {
			fmt.Fprintf(out, "%sStatus: Timeout. %v%s\n", ui.ColorWarning(), timeoutErr, ui.ColorReset())
			break
		}
		fmt.Fprintf(out, "%sStatus: Timeout. The backend did not answer in time.%s\n", ui.ColorWarning(), ui.ColorReset())
	case apperrors.ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled.%s\n", ui.ColorWarning(), ui.ColorReset())
	default:
		if errors.As(err, &validationErr) {
			fmt.Fprintf(out, "%sStatus: %s%s\n", ui.ColorError(), validationErr.Message, ui.ColorReset())
			break
		}
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", ui.ColorError(), err, ui.ColorReset())
	}
	return code
}
