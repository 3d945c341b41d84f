// Package config parses the command line and the SCHEDFORGE_ environment
// into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/agbru/schedforge/internal/backend"
	apperrors "github.com/agbru/schedforge/internal/errors"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "SCHEDFORGE_"

// DefaultBaseURL is the compiled-in backend origin.
const DefaultBaseURL = backend.DefaultBaseURL

// Theme names accepted by --theme.
var validThemes = []string{"dark", "light", "none"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// BaseURL is the origin of the timetable backend.
	BaseURL string
	// File is the spreadsheet to upload.
	File string
	// Sheet selects a sheet by index or name.
	Sheet string
	// Groups lists the tutorial groups to generate. More than one group runs
	// a batch.
	Groups []string
	// PDF and HTML are export destinations; empty disables the export.
	PDF  string
	HTML string
	// TUI starts the interactive interface.
	TUI bool
	// Theme is "dark", "light" or "none".
	Theme   string
	NoColor bool
	// Timeout bounds the whole run. Zero waits indefinitely.
	Timeout time.Duration
	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// LogFile receives the log instead of stderr.
	LogFile string
	Verbose bool
	Quiet   bool
	// Completion names a shell to print a completion script for.
	Completion string
}

// Group returns the single requested group, or "" when none or several are
// requested.
func (c AppConfig) Group() string {
	if len(c.Groups) == 1 {
		return c.Groups[0]
	}
	return ""
}

// Batch reports whether several groups are requested.
func (c AppConfig) Batch() bool {
	return len(c.Groups) > 1
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.NewConfigError("--base-url must be an http(s) URL, got %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("--timeout must not be negative, got %s", c.Timeout)
	}
	if !slices.Contains(validThemes, c.Theme) {
		return apperrors.NewConfigError("--theme must be one of %s, got %q", strings.Join(validThemes, ", "), c.Theme)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if !c.TUI && (c.PDF != "" || c.HTML != "") && len(c.Groups) == 0 {
		return apperrors.NewConfigError("exporting requires --group")
	}
	if !c.TUI && len(c.Groups) > 0 && c.Sheet == "" {
		return apperrors.NewConfigError("--group requires --sheet")
	}
	return nil
}

// groupList is a flag.Value collecting a comma separated list.
type groupList struct{ groups *[]string }

func (g groupList) String() string {
	if g.groups == nil {
		return ""
	}
	return strings.Join(*g.groups, ",")
}

func (g groupList) Set(v string) error {
	*g.groups = append(*g.groups, splitList(v)...)
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority is: command-line flag, then SCHEDFORGE_ environment variable,
// then default. A single positional argument is taken as the file.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Receives usage and parse errors.
//
// Returns:
//   - AppConfig: The configuration, validated unless --completion is set.
//   - error: flag.ErrHelp for --help, the flag package's parse error, or a
//     ConfigError for stray arguments and invalid values.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [file.xlsx]\n\n", programName)
		fmt.Fprintln(errorWriter, "Uploads a timetable workbook, lists its sheets and tutorial groups,")
		fmt.Fprintln(errorWriter, "and renders or exports the timetable of a group.")
		fmt.Fprintln(errorWriter, "\nFlags:")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEvery flag can also be set through %s<NAME> (e.g. %sBASE_URL).\n", EnvPrefix, EnvPrefix)
	}

	config := AppConfig{}
	fs.StringVar(&config.BaseURL, "base-url", DefaultBaseURL, "Origin of the timetable backend.")
	fs.StringVar(&config.File, "file", "", "Spreadsheet to upload (.xlsx).")
	fs.StringVar(&config.File, "f", "", "Shorthand for --file.")
	fs.StringVar(&config.Sheet, "sheet", "", "Sheet to use, by index or name.")
	fs.Var(groupList{&config.Groups}, "group", "Tutorial group; a comma separated list runs a batch.")
	fs.StringVar(&config.PDF, "pdf", "", "Write the timetable as PDF to this file.")
	fs.StringVar(&config.HTML, "html", "", "Write the timetable as an HTML page to this file.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the interactive interface.")
	fs.StringVar(&config.Theme, "theme", "dark", "Color theme: dark, light or none.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Maximum run time (e.g. 30s); 0 waits indefinitely.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogFile, "log-file", "", "Write logs to this file instead of stderr.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Only print results and errors.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script: bash, zsh, fish or powershell.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	switch rest := fs.Args(); {
	case len(rest) == 1 && config.File == "":
		config.File = rest[0]
	case len(rest) > 0:
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(rest, " "))
	}

	applyEnvOverrides(&config, fs)
	config.Groups = dedupe(config.Groups)

	if config.Completion != "" {
		return config, nil
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func dedupe(list []string) []string {
	if len(list) == 0 {
		return list
	}
	seen := make(map[string]bool, len(list))
	out := list[:0:0]
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

