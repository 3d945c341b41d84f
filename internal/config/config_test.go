package config

import (
	"bytes"
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/schedforge/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("schedforge", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want no timeout", cfg.Timeout)
	}
	if cfg.Theme != "dark" || cfg.TUI || cfg.Batch() || cfg.Group() != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{
		"--base-url", "http://localhost:8000",
		"-f", "tt.xlsx",
		"--sheet", "2ND YEAR",
		"--group", "2O31, 2O34",
		"--group", "2O31,2O35",
		"--pdf", "out.pdf",
		"--theme", "light",
		"--timeout", "45s",
		"-v",
	}
	cfg, err := ParseConfig("schedforge", args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := AppConfig{
		BaseURL: "http://localhost:8000",
		File:    "tt.xlsx",
		Sheet:   "2ND YEAR",
		Groups:  []string{"2O31", "2O34", "2O35"},
		PDF:     "out.pdf",
		Theme:   "light",
		Timeout: 45 * time.Second,
		Verbose: true,
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("cfg = %+v\nwant  %+v", cfg, want)
	}
	if !cfg.Batch() {
		t.Error("three groups should run a batch")
	}
}

func TestParseConfig_PositionalFile(t *testing.T) {
	cfg, err := ParseConfig("schedforge", []string{"--sheet", "1", "book.xlsx"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.File != "book.xlsx" {
		t.Errorf("File = %q", cfg.File)
	}

	_, err = ParseConfig("schedforge", []string{"a.xlsx", "b.xlsx"}, &bytes.Buffer{})
	var ce apperrors.ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("two positional args: err = %v", err)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad url", []string{"--base-url", "ftp://x"}},
		{"relative url", []string{"--base-url", "localhost"}},
		{"negative timeout", []string{"--timeout", "-1s"}},
		{"unknown theme", []string{"--theme", "orange"}},
		{"quiet and verbose", []string{"-q", "-v"}},
		{"export without group", []string{"--pdf", "x.pdf"}},
		{"group without sheet", []string{"--group", "2O34"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := ParseConfig("schedforge", tt.args, &errBuf)
			var ce apperrors.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want ConfigError", err)
			}
			if !strings.Contains(errBuf.String(), "Configuration error") {
				t.Errorf("stderr = %q", errBuf.String())
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("schedforge", []string{"--help"}, &errBuf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(errBuf.String(), "Usage: schedforge") || !strings.Contains(errBuf.String(), EnvPrefix) {
		t.Errorf("usage = %q", errBuf.String())
	}
}

func TestParseConfig_CompletionSkipsValidation(t *testing.T) {
	cfg, err := ParseConfig("schedforge", []string{"--completion", "bash", "--theme", "bogus"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Completion != "bash" {
		t.Errorf("Completion = %q", cfg.Completion)
	}
}

func TestGroupList(t *testing.T) {
	var groups []string
	v := groupList{&groups}
	_ = v.Set(" a ,, b")
	_ = v.Set("c")
	if v.String() != "a,b,c" {
		t.Errorf("String() = %q", v.String())
	}
	if (groupList{}).String() != "" {
		t.Error("zero groupList should print empty")
	}
}
