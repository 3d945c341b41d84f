package timetable

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code string
		want Category
	}{
		{"CS101L", CategoryLecture},
		{"CS101LT", CategoryLecture},
		{"UEC301 L", CategoryLecture},
		{"UEC301 T", CategoryTutorial},
		{"UEC301 P", CategoryPractical},
		{"ULT301 P", CategoryLecture},
		{"UTA001 P", CategoryTutorial},
		{"LAB101 T", CategoryLecture},
		{"ELE101 P", CategoryLecture},
		{"  UEC301 T  ", CategoryTutorial},
		{"MA201T", CategoryTutorial},
		{"PH101P", CategoryPractical},
		{"CS101", CategoryNone},
		{"", CategoryNone},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.code); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestCategory_CSSClass(t *testing.T) {
	t.Parallel()
	want := map[Category]string{
		CategoryNone:      "",
		CategoryLecture:   "lecture",
		CategoryTutorial:  "tutorial",
		CategoryPractical: "practical",
	}
	for c, class := range want {
		if got := c.CSSClass(); got != class {
			t.Errorf("%v.CSSClass() = %q, want %q", c, got, class)
		}
	}
	if CategoryNone.String() != "none" {
		t.Errorf("CategoryNone.String() = %q", CategoryNone.String())
	}
}

// TestClassify_FirstMatchWins_PropertyBased checks that every code follows the
// L, T, P containment order, whatever its shape.
func TestClassify_FirstMatchWins_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	alphabet := gen.OneConstOf("L", "T", "P", "C", "S", "1", "0", "X")
	codeGen := gen.SliceOfN(6, alphabet).Map(func(parts []string) string {
		return strings.Join(parts, "")
	})

	properties.Property("containment order decides category", prop.ForAll(
		func(code string) bool {
			var want Category
			switch {
			case strings.Contains(code, "L"):
				want = CategoryLecture
			case strings.Contains(code, "T"):
				want = CategoryTutorial
			case strings.Contains(code, "P"):
				want = CategoryPractical
			}
			return Classify(code) == want
		},
		codeGen,
	))

	properties.Property("a lecture letter anywhere wins over the session suffix", prop.ForAll(
		func(prefix string, letter string) bool {
			code := prefix + "301 " + letter
			if strings.Contains(prefix, "L") {
				return Classify(code) == CategoryLecture
			}
			if strings.Contains(prefix, "T") && letter == "P" {
				return Classify(code) == CategoryTutorial
			}
			return Classify(code) == Classify(letter)
		},
		gen.OneConstOf("UEC", "ULT", "UPT", "ABC", "UTA"),
		gen.OneConstOf("L", "T", "P"),
	))

	properties.TestingRun(t)
}

func TestCategory_Letter(t *testing.T) {
	t.Parallel()
	byLetter := map[string]Category{
		"L": CategoryLecture,
		"T": CategoryTutorial,
		"P": CategoryPractical,
	}
	for letter, c := range byLetter {
		if got := c.Letter(); got != letter {
			t.Errorf("%s.Letter() = %q, want %q", c, got, letter)
		}
	}
	if got := CategoryNone.Letter(); got != "" {
		t.Errorf("CategoryNone.Letter() = %q", got)
	}
}
