// Package format holds small display helpers shared by the CLI and the TUI.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders a request duration for display:
// microseconds below a millisecond, milliseconds below a second, and
// time.Duration's own form above. A zero or negative duration, meaning no
// measurement, renders as "-".
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}
