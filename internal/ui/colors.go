package ui

import "github.com/agbru/schedforge/internal/timetable"

// ColorPrimary returns the primary color escape code of the current theme.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the secondary color escape code.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorSuccess returns the success color escape code.
func ColorSuccess() string { return GetCurrentTheme().Success }

// ColorWarning returns the warning color escape code.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the error color escape code.
func ColorError() string { return GetCurrentTheme().Error }

// ColorInfo returns the info color escape code.
func ColorInfo() string { return GetCurrentTheme().Info }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorCategory returns the escape code for a timetable cell category, or
// "" for cells without one.
func ColorCategory(c timetable.Category) string {
	t := GetCurrentTheme()
	switch c {
	case timetable.CategoryLecture:
		return t.Lecture
	case timetable.CategoryTutorial:
		return t.Tutorial
	case timetable.CategoryPractical:
		return t.Practical
	default:
		return ""
	}
}

// Colorize wraps s in color and the reset code. An empty color returns s
// unchanged.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
