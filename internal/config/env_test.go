package config

import (
	"bytes"
	"reflect"
	"testing"
	"time"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"BASE_URL", "http://127.0.0.1:9000")
	t.Setenv(EnvPrefix+"FILE", "env.xlsx")
	t.Setenv(EnvPrefix+"SHEET", "3")
	t.Setenv(EnvPrefix+"GROUP", "A1,B2")
	t.Setenv(EnvPrefix+"TIMEOUT", "2m")
	t.Setenv(EnvPrefix+"THEME", "LIGHT")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"TUI", "1")
	t.Setenv(EnvPrefix+"NO_COLOR", "true")
	t.Setenv(EnvPrefix+"METRICS_ADDR", ":9090")
	t.Setenv(EnvPrefix+"LOG_FILE", "run.log")

	cfg, err := ParseConfig("schedforge", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := AppConfig{
		BaseURL:     "http://127.0.0.1:9000",
		File:        "env.xlsx",
		Sheet:       "3",
		Groups:      []string{"A1", "B2"},
		Timeout:     2 * time.Minute,
		Theme:       "light",
		Quiet:       true,
		TUI:         true,
		NoColor:     true,
		MetricsAddr: ":9090",
		LogFile:     "run.log",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("cfg = %+v\nwant  %+v", cfg, want)
	}
}

func TestEnvOverrides_FlagsWin(t *testing.T) {
	t.Setenv(EnvPrefix+"SHEET", "3")
	t.Setenv(EnvPrefix+"TIMEOUT", "2m")
	t.Setenv(EnvPrefix+"FILE", "env.xlsx")
	t.Setenv(EnvPrefix+"VERBOSE", "true")

	cfg, err := ParseConfig("schedforge", []string{"--sheet", "1", "--timeout", "5s", "-v=false", "arg.xlsx"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Sheet != "1" || cfg.Timeout != 5*time.Second || cfg.File != "arg.xlsx" || cfg.Verbose {
		t.Errorf("flags did not take priority: %+v", cfg)
	}
}

func TestEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"TIMEOUT", "soon")
	t.Setenv(EnvPrefix+"VERBOSE", "maybe")

	cfg, err := ParseConfig("schedforge", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Timeout != 0 || cfg.Verbose {
		t.Errorf("invalid env values applied: %+v", cfg)
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"no", true, false},
		{"0", true, false},
		{"perhaps", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v", tt.in, tt.def, got)
		}
	}
}
