package timetable

import "strings"

// Category is the session type a course code denotes.
type Category int

const (
	// CategoryNone marks empty cells and codes that carry no session letter.
	CategoryNone Category = iota
	CategoryLecture
	CategoryTutorial
	CategoryPractical
)

// Classify derives the Category of a course code by containment, checked in
// the order L, T, P. The first match wins, so "CS101LT" and "ULT301 P" are
// lectures and "UTA001 P" is a tutorial.
func Classify(code string) Category {
	switch {
	case strings.Contains(code, "L"):
		return CategoryLecture
	case strings.Contains(code, "T"):
		return CategoryTutorial
	case strings.Contains(code, "P"):
		return CategoryPractical
	default:
		return CategoryNone
	}
}

// String returns the lowercase category name, or "none".
func (c Category) String() string {
	switch c {
	case CategoryLecture:
		return "lecture"
	case CategoryTutorial:
		return "tutorial"
	case CategoryPractical:
		return "practical"
	default:
		return "none"
	}
}

// CSSClass returns the class attribute value used in HTML output. Cells
// without a category get an empty class.
func (c Category) CSSClass() string {
	if c == CategoryNone {
		return ""
	}
	return c.String()
}

// Letter returns the course-code suffix of the category: "L", "T", "P", or
// "" for CategoryNone.
func (c Category) Letter() string {
	switch c {
	case CategoryLecture:
		return "L"
	case CategoryTutorial:
		return "T"
	case CategoryPractical:
		return "P"
	default:
		return ""
	}
}
