package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/orchestration/mocks"
	"github.com/agbru/schedforge/internal/timetable"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestNew_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"schedforge", "--help"}, &errBuf)
	if !IsHelpError(err) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(errBuf.String(), "-base-url") {
		t.Errorf("usage missing flags:\n%s", errBuf.String())
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"schedforge", "--theme", "purple"}, &errBuf)
	if err == nil || IsHelpError(err) {
		t.Fatalf("err = %v", err)
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d", apperrors.ExitCodeFor(err))
	}
}

func TestRun_Completion(t *testing.T) {
	app, err := New([]string{"schedforge", "--completion", "fish"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "complete -c schedforge") {
		t.Errorf("output = %q", out.String())
	}

	app.Config.Completion = "tcsh"
	var errBuf bytes.Buffer
	app.ErrWriter = &errBuf
	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d", code)
	}
}

func TestRun_ListsSheets(t *testing.T) {
	path := writeWorkbook(t)
	ctrl := gomock.NewController(t)
	b := mocks.NewMockBackend(ctrl)
	b.EXPECT().ListSheets(gomock.Any(), gomock.Any()).Return([]timetable.Sheet{{Index: 0, Name: "Sheet1"}}, nil)

	logFile := filepath.Join(t.TempDir(), "run.log")
	app, err := New([]string{"schedforge", "-q", "--no-color", "--log-file", logFile, path}, &bytes.Buffer{}, WithBackend(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	if out.String() != "0\tSheet1\n" {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestRun_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	app, err := New([]string{"schedforge", "--no-color", "--metrics-addr", "127.0.0.1:0"}, &bytes.Buffer{},
		WithBackend(mocks.NewMockBackend(ctrl)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, output:\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "no file selected") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_BadLogFile(t *testing.T) {
	app, err := New([]string{"schedforge", "--log-file", filepath.Join(t.TempDir(), "missing", "run.log")}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var errBuf bytes.Buffer
	app.ErrWriter = &errBuf
	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d", code)
	}
	if !strings.Contains(errBuf.String(), "Error opening log file") {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"--sheet", "1", "-version"}, true},
		{[]string{"--", "--version"}, false},
		{[]string{"-v"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	PrintVersion(&out)
	for _, want := range []string{"schedforge dev", "commit:", "go version:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
