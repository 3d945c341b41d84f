//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/schedforge/internal/orchestration"
	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/ui"
)

// SpinnerRefreshRate defines the refresh frequency of the spinner.
const SpinnerRefreshRate = 120 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerObserver shows a spinner while a backend step is in flight and
// prints the resulting status line once it settles.
type SpinnerObserver struct {
	out     io.Writer
	spinner Spinner
	quiet   bool

	mu       sync.Mutex
	spinning bool
}

var _ orchestration.Observer = (*SpinnerObserver)(nil)

// NewSpinnerObserver returns an observer writing to out. In quiet mode
// nothing is drawn.
func NewSpinnerObserver(out io.Writer, quiet bool) *SpinnerObserver {
	return &SpinnerObserver{
		out:     out,
		spinner: newSpinner(spinner.WithWriter(out)),
		quiet:   quiet,
	}
}

// Observe implements orchestration.Observer.
func (o *SpinnerObserver) Observe(s session.State) {
	if o.quiet {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	if s.Loading() {
		o.spinner.UpdateSuffix(" " + s.Status())
		if !o.spinning {
			o.spinner.Start()
			o.spinning = true
		}
		return
	}
	o.stopLocked()
	if s.Status() == "" {
		return
	}
	color := ui.ColorSuccess()
	if failed(s) {
		color = ui.ColorError()
	}
	fmt.Fprintf(o.out, "%s%s%s\n", color, s.Status(), ui.ColorReset())
}

// Stop halts a running spinner.
func (o *SpinnerObserver) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopLocked()
}

func (o *SpinnerObserver) stopLocked() {
	if o.spinning {
		o.spinner.Stop()
		o.spinning = false
	}
}

func failed(s session.State) bool {
	switch s.Status() {
	case orchestration.StatusSheetsFailed,
		orchestration.StatusGroupsFailed,
		orchestration.StatusTimetableFailed,
		orchestration.StatusMissingInput,
		orchestration.StatusNoTimetable:
		return true
	}
	return false
}
