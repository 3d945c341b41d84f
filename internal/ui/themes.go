package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for CLI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates positive outcomes or completed operations.
	Success string
	// Warning is used for caution messages or non-critical issues.
	Warning string
	// Error indicates failures or critical issues.
	Error string
	// Info is used for informational messages.
	Info string
	// Lecture, Tutorial and Practical color timetable cells by category.
	Lecture   string
	Tutorial  string
	Practical string
	Bold      string
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Lecture:   "\033[38;5;75m",
		Tutorial:  "\033[38;5;114m",
		Practical: "\033[38;5;215m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Lecture:   "\033[38;5;25m",
		Tutorial:  "\033[38;5;22m",
		Practical: "\033[38;5;94m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the TUI.
type TUITheme struct {
	Bg        lipgloss.TerminalColor
	Text      lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Accent    lipgloss.TerminalColor
	Success   lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Dim       lipgloss.TerminalColor
	Info      lipgloss.TerminalColor
	Lecture   lipgloss.TerminalColor
	Tutorial  lipgloss.TerminalColor
	Practical lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default TUI palette.
	DarkTUITheme = TUITheme{
		Bg:        lipgloss.Color("#1a1b26"),
		Text:      lipgloss.Color("#E0E0E0"),
		Border:    lipgloss.Color("#4488FF"),
		Accent:    lipgloss.Color("#7aa2f7"),
		Success:   lipgloss.Color("#9ece6a"),
		Warning:   lipgloss.Color("#FFB347"),
		Error:     lipgloss.Color("#FF4444"),
		Dim:       lipgloss.Color("#666666"),
		Info:      lipgloss.Color("#bb9af7"),
		Lecture:   lipgloss.Color("#7dcfff"),
		Tutorial:  lipgloss.Color("#9ece6a"),
		Practical: lipgloss.Color("#ff9e64"),
	}

	// LightTUITheme is the TUI palette for light backgrounds.
	LightTUITheme = TUITheme{
		Bg:        lipgloss.Color("#FAFAFA"),
		Text:      lipgloss.Color("#222222"),
		Border:    lipgloss.Color("#1f4fbf"),
		Accent:    lipgloss.Color("#1f4fbf"),
		Success:   lipgloss.Color("#2e7d32"),
		Warning:   lipgloss.Color("#b35c00"),
		Error:     lipgloss.Color("#c62828"),
		Dim:       lipgloss.Color("#888888"),
		Info:      lipgloss.Color("#6a1b9a"),
		Lecture:   lipgloss.Color("#0d47a1"),
		Tutorial:  lipgloss.Color("#1b5e20"),
		Practical: lipgloss.Color("#8d4a00"),
	}

	// NoColorTUITheme disables all TUI colors.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:        lipgloss.NoColor{},
		Text:      lipgloss.NoColor{},
		Border:    lipgloss.NoColor{},
		Accent:    lipgloss.NoColor{},
		Success:   lipgloss.NoColor{},
		Warning:   lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
		Dim:       lipgloss.NoColor{},
		Info:      lipgloss.NoColor{},
		Lecture:   lipgloss.NoColor{},
		Tutorial:  lipgloss.NoColor{},
		Practical: lipgloss.NoColor{},
	}
)

// TUIThemeFor returns the TUI palette matching a CLI theme.
func TUIThemeFor(t Theme) TUITheme {
	switch t.Name {
	case NoColorTheme.Name:
		return NoColorTUITheme
	case LightTheme.Name:
		return LightTUITheme
	default:
		return DarkTUITheme
	}
}

// GetCurrentTUITheme returns the TUI theme matching the currently active theme.
func GetCurrentTUITheme() TUITheme {
	return TUIThemeFor(GetCurrentTheme())
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names select dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = themeByName(name)
}

// ToggleDark flips between the dark and light themes and returns the theme
// now active. With colors disabled it does nothing.
func ToggleDark() Theme {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch currentTheme.Name {
	case DarkTheme.Name:
		currentTheme = LightTheme
	case LightTheme.Name:
		currentTheme = DarkTheme
	}
	return currentTheme
}

// IsDark reports whether the dark theme is active.
func IsDark() bool {
	return GetCurrentTheme().Name == DarkTheme.Name
}

// InitTheme initializes the theme from the --theme value, the noColor flag
// and the environment. It respects the NO_COLOR environment variable
// (https://no-color.org/): if noColor is true or NO_COLOR is set, colors are
// disabled whatever the theme name.
func InitTheme(name string, noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = themeByName(name)
}

func themeByName(name string) Theme {
	switch name {
	case LightTheme.Name:
		return LightTheme
	case NoColorTheme.Name:
		return NoColorTheme
	default:
		return DarkTheme
	}
}
