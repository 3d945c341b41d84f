package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/orchestration/mocks"
	"github.com/agbru/schedforge/internal/session"
	"github.com/agbru/schedforge/internal/workbook"
)

func TestDrive_FullChain(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	b := mocks.NewMockBackend(ctrl)
	obs := mocks.NewMockObserver(ctrl)
	o := New(b)

	gomock.InOrder(
		b.EXPECT().ListSheets(gomock.Any(), fileA).Return(sheets, nil),
		b.EXPECT().ListTutorialGroups(gomock.Any(), fileA, "2").Return(groups, nil),
		b.EXPECT().Timetable(gomock.Any(), fileA, "2", "2O31").Return(result("2O31"), nil),
	)
	var statuses []string
	obs.EXPECT().Observe(gomock.Any()).Do(func(s session.State) {
		statuses = append(statuses, s.Status())
	}).Times(6)

	s, err := o.Drive(context.Background(), Request{File: fileA, Sheet: "2nd year", Group: "2O31"}, obs)
	if err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if !s.Rendered() {
		t.Fatalf("stage = %v", s.Stage())
	}
	want := []string{
		StatusLoadingSheets, StatusSheetsLoaded,
		StatusLoadingGroups, StatusGroupsLoaded,
		StatusGenerating, `Timetable for "2O31" from "2ND YEAR"`,
	}
	for i := range want {
		if i >= len(statuses) || statuses[i] != want[i] {
			t.Fatalf("statuses = %q, want %q", statuses, want)
		}
	}
}

func TestDrive_StopsAtSheets(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	b := mocks.NewMockBackend(ctrl)
	o := New(b)

	b.EXPECT().ListSheets(gomock.Any(), fileA).Return(sheets, nil)

	s, err := o.Drive(context.Background(), Request{File: fileA}, nil)
	if err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if s.Stage() != session.StageSheetsLoaded {
		t.Errorf("stage = %v", s.Stage())
	}
}

func TestDrive_Errors(t *testing.T) {
	t.Parallel()
	backendErr := apperrors.StatusError{Endpoint: "/timetable/", Code: 404, Message: "Tutorial group not found."}

	tests := []struct {
		name   string
		req    Request
		setup  func(b *mocks.MockBackend)
		field  string
		target error
	}{
		{
			name:  "no file",
			req:   Request{File: workbook.File{}},
			setup: func(*mocks.MockBackend) {},
			field: "file",
		},
		{
			name: "unknown sheet",
			req:  Request{File: fileA, Sheet: "9"},
			setup: func(b *mocks.MockBackend) {
				b.EXPECT().ListSheets(gomock.Any(), fileA).Return(sheets, nil)
			},
			field: "sheet",
		},
		{
			name: "unknown group",
			req:  Request{File: fileA, Sheet: "1", Group: "NOPE"},
			setup: func(b *mocks.MockBackend) {
				b.EXPECT().ListSheets(gomock.Any(), fileA).Return(sheets, nil)
				b.EXPECT().ListTutorialGroups(gomock.Any(), fileA, "1").Return(groups, nil)
			},
			field: "group",
		},
		{
			name: "backend failure",
			req:  Request{File: fileA, Sheet: "1", Group: "2O34"},
			setup: func(b *mocks.MockBackend) {
				b.EXPECT().ListSheets(gomock.Any(), fileA).Return(sheets, nil)
				b.EXPECT().ListTutorialGroups(gomock.Any(), fileA, "1").Return(groups, nil)
				b.EXPECT().Timetable(gomock.Any(), fileA, "1", "2O34").Return(result(""), backendErr)
			},
			target: backendErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			b := mocks.NewMockBackend(ctrl)
			tt.setup(b)

			s, err := New(b).Drive(context.Background(), tt.req, nil)
			if err == nil {
				t.Fatal("Drive succeeded")
			}
			if tt.target != nil {
				if !errors.Is(err, tt.target) {
					t.Errorf("err = %v, want %v", err, tt.target)
				}
				if s.Status() != StatusTimetableFailed {
					t.Errorf("status = %q", s.Status())
				}
				return
			}
			var ve apperrors.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("err = %#v, want ValidationError on %q", err, tt.field)
			}
		})
	}
}
