package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/agbru/schedforge/internal/config"
	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/export"
	"github.com/agbru/schedforge/internal/orchestration"
	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/workbook"
)

// Run executes the non-interactive flow described by cfg and returns the
// process exit code. It goes as far as the selection reaches: without a
// sheet it lists sheets, without a group it lists tutorial groups, and with
// groups it renders and optionally exports their timetables.
//
// Parameters:
//   - ctx: The run context; its deadline is the --timeout budget.
//   - o: The orchestrator that issues the backend calls.
//   - cfg: The parsed configuration holding file, sheet, groups and outputs.
//   - out: The io.Writer for listings, tables and status lines.
//
// Returns:
//   - int: The process exit code.
func Run(ctx context.Context, o *orchestration.Orchestrator, cfg config.AppConfig, out io.Writer) int {
	display := OutputConfig{Quiet: cfg.Quiet}
	fail := func(err error) int {
		if errors.Is(err, context.DeadlineExceeded) && cfg.Timeout > 0 {
			err = apperrors.TimeoutError{Operation: "schedforge", Limit: cfg.Timeout}
		}
		return HandleError(err, out)
	}

	f, err := workbook.Open(cfg.File)
	if err != nil {
		return fail(err)
	}

	obs := NewSpinnerObserver(out, cfg.Quiet)
	defer obs.Stop()

	req := orchestration.Request{File: f, Sheet: cfg.Sheet, Group: cfg.Group()}
	s, err := o.Drive(ctx, req, obs)
	if err != nil {
		return fail(err)
	}

	switch {
	case cfg.Sheet == "":
		DisplaySheets(out, s.Sheets(), display)
		return apperrors.ExitSuccess
	case len(cfg.Groups) == 0:
		DisplayGroups(out, s.SheetName(), s.Groups(), display)
		return apperrors.ExitSuccess
	case cfg.Batch():
		return runBatch(ctx, o, s, cfg, out, fail)
	}

	DisplayTimetable(out, s, display)
	for _, dest := range destinations(cfg) {
		path, err := o.Export(s, dest)
		if err != nil {
			return fail(err)
		}
		DisplayExported(out, path, display)
	}
	return apperrors.ExitSuccess
}

func runBatch(ctx context.Context, o *orchestration.Orchestrator, s session.State, cfg config.AppConfig, out io.Writer, fail func(error) int) int {
	results, err := o.FetchTimetables(ctx, s, cfg.Groups)
	if err != nil {
		return fail(err)
	}

	paths := make(map[string]string)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !cfg.Quiet && len(destinations(cfg)) == 0 {
			DisplayTimetable(out, session.New().WithResult(res.Result), OutputConfig{})
		}
		for _, dest := range destinations(cfg) {
			path, err := o.ExportResult(res.Result, export.SuffixPath(dest, res.Group))
			if err != nil {
				return fail(err)
			}
			paths[res.Group] = path
		}
	}

	if cfg.Quiet {
		for _, res := range results {
			if res.Err == nil {
				fmt.Fprintf(out, "%s\t%s\n", res.Group, paths[res.Group])
			}
		}
	} else {
		PresentBatchTable(results, paths, out)
	}
	if err := orchestration.FirstError(results); err != nil {
		return fail(err)
	}
	return apperrors.ExitSuccess
}

func destinations(cfg config.AppConfig) []string {
	var dests []string
	if cfg.PDF != "" {
		dests = append(dests, cfg.PDF)
	}
	if cfg.HTML != "" {
		dests = append(dests, cfg.HTML)
	}
	return dests
}
