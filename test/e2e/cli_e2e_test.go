package e2e

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// fakeBackend answers the three timetable endpoints with fixed payloads.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/list_sheets/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"sheets":[{"index":0,"name":"1ST YEAR A"},{"index":1,"name":"2ND YEAR"}]}`)
	})
	mux.HandleFunc("/list_tutorial_groups/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"tutorial_groups":["2O31","2O34"]}`)
	})
	mux.HandleFunc("/timetable/", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, `{"error":"bad form"}`, http.StatusBadRequest)
			return
		}
		group := r.FormValue("tutorial_group")
		if group == "9Z99" {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":"group not found"}`)
			return
		}
		io.WriteString(w, `{"tutorial_group":"`+group+`","sheet_name":"2ND YEAR",`+
			`"time_slots":["08:00 AM","08:50 AM"],`+
			`"timetable":{"Monday":{"08:00 AM":"UEC301 L"},"Tuesday":{"08:50 AM":"UMA031 T"}}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	path := filepath.Join(dir, "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "schedforge"
	if runtime.GOOS == "windows" {
		binName = "schedforge.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in test/e2e; the build runs from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/schedforge")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build schedforge: %v", err)
	}

	srv := fakeBackend(t)
	book := writeWorkbook(t, tmpDir)
	pdfPath := filepath.Join(tmpDir, "out.pdf")

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "schedforge",
			wantCode: 0,
		},
		{
			name:     "Bash Completion",
			args:     []string{"--completion", "bash"},
			wantOut:  "complete -o filenames -F _schedforge_completions schedforge",
			wantCode: 0,
		},
		{
			name:     "List Sheets",
			args:     []string{"--base-url", srv.URL, "-q", book},
			wantOut:  "1\t2ND YEAR",
			wantCode: 0,
		},
		{
			name:     "List Groups",
			args:     []string{"--base-url", srv.URL, "-q", "--sheet", "1", book},
			wantOut:  "2O34",
			wantCode: 0,
		},
		{
			name:     "Render And Export",
			args:     []string{"--base-url", srv.URL, "--sheet", "1", "--group", "2O34", "--pdf", pdfPath, book},
			wantOut:  `timetable for "2o34" from "2nd year"`,
			wantCode: 0,
		},
		{
			name:     "Unknown Group",
			args:     []string{"--base-url", srv.URL, "--sheet", "1", "--group", "9Z99", book},
			wantOut:  "has no tutorial group",
			wantCode: 4,
		},
		{
			name:     "Missing File",
			args:     []string{"--base-url", srv.URL},
			wantOut:  "no file selected",
			wantCode: 4,
		},
		{
			name:     "Invalid Theme",
			args:     []string{"--theme", "purple"},
			wantOut:  "configuration error",
			wantCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else if exitErr, ok := err.(*exec.ExitError); !ok || exitErr.ExitCode() != tt.wantCode {
				t.Errorf("exit = %v, want code %d\nOutput: %s", err, tt.wantCode, outStr)
			}

			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}

	if data, err := os.ReadFile(pdfPath); err != nil || !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("PDF export missing or invalid: %v", err)
	}
}
