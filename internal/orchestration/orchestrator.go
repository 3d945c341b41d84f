package orchestration

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/export"
	"github.com/agbru/schedforge/internal/logging"
	"github.com/agbru/schedforge/internal/metrics"
	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/timetable"
	"github.com/agbru/schedforge/internal/workbook"
)

// Status lines shown to the user. Transport and decoding failures share the
// generic "Failed to ..." line of their step; details go to the log.
const (
	StatusLoadingSheets   = "Loading sheets..."
	StatusSheetsLoaded    = "Sheets loaded. Select a sheet."
	StatusSheetsFailed    = "Failed to load sheets."
	StatusLoadingGroups   = "Loading tutorial groups..."
	StatusGroupsLoaded    = "Tutorial groups loaded."
	StatusGroupsFailed    = "Failed to load tutorial groups."
	StatusGenerating      = "Generating timetable..."
	StatusMissingInput    = "Missing input."
	StatusTimetableFailed = "Failed to generate timetable."
	StatusNoTimetable     = "No timetable to download."
)

// StepKind identifies the backend call behind a Step.
type StepKind int

const (
	StepSheets StepKind = iota
	StepGroups
	StepTimetable
)

func (k StepKind) String() string {
	switch k {
	case StepSheets:
		return "list_sheets"
	case StepGroups:
		return "list_tutorial_groups"
	case StepTimetable:
		return "timetable"
	default:
		return "step(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k StepKind) failureStatus() string {
	switch k {
	case StepSheets:
		return StatusSheetsFailed
	case StepGroups:
		return StatusGroupsFailed
	default:
		return StatusTimetableFailed
	}
}

// Outcome is the result of running a Step. Exactly one of the payload
// fields is meaningful, according to Kind, unless Err is set.
type Outcome struct {
	Kind       StepKind
	Generation uint64
	Sheets     []timetable.Sheet
	Groups     []string
	Result     timetable.Result
	Err        error
}

// Step is a pending backend call, tagged with the session generation that
// issued it.
type Step struct {
	Kind       StepKind
	Generation uint64
	call       func(ctx context.Context) Outcome
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for failures and dropped responses.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithMetrics sets the collector that counts dropped responses.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// Orchestrator implements the upload handlers. It is safe for concurrent
// use. It keeps no session state, only the cancel function of the newest
// in-flight request.
type Orchestrator struct {
	backend Backend
	logger  logging.Logger
	metrics *metrics.Collector

	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
}

// New creates an Orchestrator backed by b.
//
// Parameters:
//   - b: The backend serving the three timetable endpoints.
//   - opts: Optional settings such as WithLogger and WithMetrics.
//
// Returns:
//   - *Orchestrator: An orchestrator with no request in flight.
func New(b Backend, opts ...Option) *Orchestrator {
	o := &Orchestrator{backend: b, logger: logging.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SelectFile handles a new file selection. Sheets, groups and any rendered
// timetable are cleared before the returned step runs. An empty file is a
// no-op and yields a nil step.
func (o *Orchestrator) SelectFile(s session.State, f workbook.File) (session.State, *Step) {
	next, ok := s.SelectFile(f)
	if !ok {
		return s, nil
	}
	if f.PreflightErr != nil {
		o.logger.Info("uploading a file excelize could not open",
			logging.String("file", f.Name), logging.Err(f.PreflightErr))
	}
	next = next.Begin(StatusLoadingSheets)
	gen := next.Generation()
	o.supersede(gen)
	return next, &Step{Kind: StepSheets, Generation: gen, call: func(ctx context.Context) Outcome {
		sheets, err := o.backend.ListSheets(ctx, f)
		return Outcome{Kind: StepSheets, Generation: gen, Sheets: sheets, Err: err}
	}}
}

// SelectSheet handles a sheet selection. It needs a selected file and a
// non-empty value; otherwise it is a no-op and yields a nil step.
func (o *Orchestrator) SelectSheet(s session.State, sheet string) (session.State, *Step) {
	next, ok := s.SelectSheet(sheet)
	if !ok {
		return s, nil
	}
	next = next.Begin(StatusLoadingGroups)
	gen, f, choice := next.Generation(), next.File(), next.Sheet()
	o.supersede(gen)
	return next, &Step{Kind: StepGroups, Generation: gen, call: func(ctx context.Context) Outcome {
		groups, err := o.backend.ListTutorialGroups(ctx, f, choice)
		return Outcome{Kind: StepGroups, Generation: gen, Groups: groups, Err: err}
	}}
}

// SelectGroup records the tutorial group. No request is issued; a pending
// timetable request for another group is superseded.
func (o *Orchestrator) SelectGroup(s session.State, group string) session.State {
	next, ok := s.SelectGroup(group)
	if !ok {
		return s
	}
	o.supersede(next.Generation())
	return next
}

// Submit requests the timetable of the selected group. When file, sheet or
// group is missing the state only gets the "Missing input." status and no
// step is returned.
func (o *Orchestrator) Submit(s session.State) (session.State, *Step) {
	if !s.Ready() {
		return s.WithStatus(StatusMissingInput), nil
	}
	next := s.Begin(StatusGenerating)
	gen, f, sheet, group := next.Generation(), next.File(), next.Sheet(), next.Group()
	o.supersede(gen)
	return next, &Step{Kind: StepTimetable, Generation: gen, call: func(ctx context.Context) Outcome {
		res, err := o.backend.Timetable(ctx, f, sheet, group)
		return Outcome{Kind: StepTimetable, Generation: gen, Result: res, Err: err}
	}}
}

// Run executes step. A newer step or Reset cancels ctx for this one.
func (o *Orchestrator) Run(ctx context.Context, step *Step) Outcome {
	ctx, done := o.track(ctx, step.Generation)
	defer done()
	return step.call(ctx)
}

// Apply folds out into s. Outcomes whose generation is no longer current
// are dropped and s is returned unchanged.
func (o *Orchestrator) Apply(s session.State, out Outcome) session.State {
	step := logging.String("step", out.Kind.String())
	if !s.Current(out.Generation) {
		o.metrics.StaleDropped(out.Kind.String())
		o.logger.Debug("dropping stale response", step,
			logging.Uint64("generation", out.Generation),
			logging.Uint64("current", s.Generation()))
		return s
	}
	if out.Err != nil {
		o.logger.Error("backend call failed", out.Err, step, logging.Uint64("generation", out.Generation))
		return s.Fail(out.Kind.failureStatus())
	}

	switch out.Kind {
	case StepSheets:
		return s.WithSheets(out.Sheets).WithStatus(StatusSheetsLoaded)
	case StepGroups:
		return s.WithGroups(out.Groups).WithStatus(StatusGroupsLoaded)
	default:
		return s.WithResult(out.Result).WithStatus(out.Result.Caption())
	}
}

// Reset returns to an idle session and cancels any request in flight.
func (o *Orchestrator) Reset(s session.State) session.State {
	next := s.Reset()
	o.supersede(next.Generation())
	return next
}

// Export writes the rendered timetable to path, or to export.DefaultFileName
// when path is empty. Without a rendered timetable nothing is written and a
// ValidationError carrying StatusNoTimetable is returned.
func (o *Orchestrator) Export(s session.State, path string) (string, error) {
	if !s.Rendered() {
		return "", apperrors.ValidationError{Field: "timetable", Message: StatusNoTimetable}
	}
	return o.ExportResult(s.Result(), path)
}

// ExportResult writes r to path in the format implied by its extension.
func (o *Orchestrator) ExportResult(r timetable.Result, path string) (string, error) {
	if path == "" {
		path = export.DefaultFileName
	}
	format := export.FormatFor(path)
	if err := export.WriteFile(path, format, export.NewDocument(r)); err != nil {
		return "", err
	}
	o.logger.Info("timetable exported",
		logging.String("path", path),
		logging.String("format", format.String()),
		logging.String("group", r.TutorialGroup))
	return path, nil
}

// Request is a scripted selection for Drive.
type Request struct {
	File  workbook.File
	Sheet string
	Group string
}

// Drive runs the chain sequentially as far as req reaches: sheets are always
// listed, groups when a sheet is named, and the timetable when a group is
// named too. Sheets may be named by index or by name. obs sees each state,
// including the loading ones.
//
// Parameters:
//   - ctx: Bounds every backend call; canceling it stops the chain.
//   - req: The file and the optional sheet and group to select.
//   - obs: Receives every intermediate state (use NullObserver to ignore them).
//
// Returns:
//   - session.State: The last state reached, failed or not.
//   - error: The first failure, or nil when the chain got as far as req reaches.
func (o *Orchestrator) Drive(ctx context.Context, req Request, obs Observer) (session.State, error) {
	if obs == nil {
		obs = NullObserver{}
	}

	s, step := o.SelectFile(session.New(), req.File)
	if step == nil {
		return s, apperrors.ValidationError{Field: "file", Message: "no file selected"}
	}
	s, err := o.await(ctx, s, step, obs)
	if err != nil || req.Sheet == "" {
		return s, err
	}

	sheet, ok := s.LookupSheet(req.Sheet)
	if !ok {
		return s, apperrors.ValidationError{Field: "sheet", Message: fmt.Sprintf("workbook has no sheet %q", req.Sheet)}
	}
	s, step = o.SelectSheet(s, strconv.Itoa(sheet.Index))
	s, err = o.await(ctx, s, step, obs)
	if err != nil || req.Group == "" {
		return s, err
	}

	if !slices.Contains(s.Groups(), req.Group) {
		return s, apperrors.ValidationError{Field: "group", Message: fmt.Sprintf("sheet %q has no tutorial group %q", sheet.Name, req.Group)}
	}
	s, step = o.Submit(o.SelectGroup(s, req.Group))
	if step == nil {
		obs.Observe(s)
		return s, apperrors.ValidationError{Field: "group", Message: StatusMissingInput}
	}
	return o.await(ctx, s, step, obs)
}

func (o *Orchestrator) await(ctx context.Context, s session.State, step *Step, obs Observer) (session.State, error) {
	obs.Observe(s)
	out := o.Run(ctx, step)
	s = o.Apply(s, out)
	obs.Observe(s)
	return s, out.Err
}

// supersede records gen as the newest generation and cancels an older
// request still in flight.
func (o *Orchestrator) supersede(gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen < o.latest {
		return
	}
	o.latest = gen
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *Orchestrator) track(parent context.Context, gen uint64) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen < o.latest {
		cancel()
		return ctx, func() {}
	}
	if o.cancel != nil {
		o.cancel()
	}
	o.latest, o.cancel = gen, cancel
	return ctx, func() {
		o.mu.Lock()
		if o.latest == gen {
			o.cancel = nil
		}
		o.mu.Unlock()
		cancel()
	}
}
