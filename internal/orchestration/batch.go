package orchestration

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/logging"
	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/timetable"
)

// DefaultBatchLimit bounds the number of timetable requests in flight during
// a batch.
const DefaultBatchLimit = 4

// GroupResult is the outcome of one group in a batch.
type GroupResult struct {
	Group    string
	Result   timetable.Result
	Duration time.Duration
	Err      error
}

// FetchTimetables generates the timetables of several tutorial groups of the
// selected sheet concurrently. Results keep the order of groups; a failure
// of one group does not stop the others. The session is not modified.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - s: A session with a file and a selected sheet.
//   - groups: The tutorial groups to generate.
//
// Returns:
//   - []GroupResult: One result per group, in the order of groups.
//   - error: A ValidationError when s has no file or sheet, or groups is empty.
func (o *Orchestrator) FetchTimetables(ctx context.Context, s session.State, groups []string) ([]GroupResult, error) {
	if !s.HasFile() || s.Sheet() == "" {
		return nil, apperrors.ValidationError{Field: "sheet", Message: StatusMissingInput}
	}
	if len(groups) == 0 {
		return nil, apperrors.ValidationError{Field: "group", Message: StatusMissingInput}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultBatchLimit)
	results := make([]GroupResult, len(groups))
	f, sheet := s.File(), s.Sheet()

	for i, group := range groups {
		g.Go(func() error {
			start := time.Now()
			res, err := o.backend.Timetable(ctx, f, sheet, group)
			results[i] = GroupResult{Group: group, Result: res, Duration: time.Since(start), Err: err}
			if err != nil {
				o.logger.Error("backend call failed", err,
					logging.String("step", StepTimetable.String()),
					logging.String("group", group))
			}
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

// FirstError returns the first failure of a batch in group order.
func FirstError(results []GroupResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
