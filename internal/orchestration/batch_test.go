package orchestration

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/orchestration/mocks"
	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/timetable"
	"github.com/agbru/schedforge/internal/workbook"
)

func sheetSelected(t *testing.T) session.State {
	t.Helper()
	s, _ := session.New().SelectFile(fileA)
	s, ok := s.WithSheets(sheets).SelectSheet("2")
	if !ok {
		t.Fatal("SelectSheet failed")
	}
	return s
}

func TestFetchTimetables_KeepsOrderAndPartialFailures(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	b := mocks.NewMockBackend(ctrl)
	o := New(b)

	failure := apperrors.StatusError{Endpoint: "/timetable/", Code: 404}
	b.EXPECT().Timetable(gomock.Any(), fileA, "2", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ workbook.File, _, group string) (timetable.Result, error) {
			if group == "BAD" {
				return timetable.Result{}, failure
			}
			if group == "2O31" {
				time.Sleep(10 * time.Millisecond)
			}
			return result(group), nil
		}).Times(3)

	results, err := o.FetchTimetables(context.Background(), sheetSelected(t), []string{"2O31", "BAD", "2O34"})
	if err != nil {
		t.Fatalf("FetchTimetables: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len = %d", len(results))
	}
	for i, want := range []string{"2O31", "BAD", "2O34"} {
		if results[i].Group != want {
			t.Errorf("results[%d].Group = %q, want %q", i, results[i].Group, want)
		}
	}
	if results[0].Err != nil || results[0].Result.TutorialGroup != "2O31" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if !errors.Is(FirstError(results), failure) {
		t.Errorf("FirstError = %v", FirstError(results))
	}
}

func TestFetchTimetables_RespectsLimit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	b := mocks.NewMockBackend(ctrl)
	o := New(b)

	var current, peak atomic.Int32
	b.EXPECT().Timetable(gomock.Any(), fileA, "2", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ workbook.File, _, group string) (timetable.Result, error) {
			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
			return result(group), nil
		}).Times(12)

	groups := make([]string, 12)
	for i := range groups {
		groups[i] = string(rune('A' + i))
	}
	if _, err := o.FetchTimetables(context.Background(), sheetSelected(t), groups); err != nil {
		t.Fatal(err)
	}
	if p := peak.Load(); p > DefaultBatchLimit {
		t.Errorf("peak concurrency = %d, limit %d", p, DefaultBatchLimit)
	}
}

func TestFetchTimetables_RequiresSheet(t *testing.T) {
	t.Parallel()
	o := New(mocks.NewMockBackend(gomock.NewController(t)))
	var ve apperrors.ValidationError

	if _, err := o.FetchTimetables(context.Background(), session.New(), []string{"A"}); !errors.As(err, &ve) {
		t.Errorf("no sheet: err = %v", err)
	}
	if _, err := o.FetchTimetables(context.Background(), sheetSelected(t), nil); !errors.As(err, &ve) {
		t.Errorf("no groups: err = %v", err)
	}
}

func TestFirstError_None(t *testing.T) {
	t.Parallel()
	if err := FirstError([]GroupResult{{Group: "A"}}); err != nil {
		t.Errorf("FirstError = %v", err)
	}
}
