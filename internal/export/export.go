package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/timetable"
)

// DefaultFileName is the file name used when no destination is given.
const DefaultFileName = "timetable.pdf"

// Format selects the output document type.
type Format int

const (
	FormatPDF Format = iota
	FormatHTML
)

func (f Format) String() string {
	if f == FormatHTML {
		return "html"
	}
	return "pdf"
}

// FormatFor picks the format from a path's extension. Anything that is not
// .html or .htm is written as PDF.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatPDF
	}
}

// Document is the content of one export.
type Document struct {
	Title string
	Grid  timetable.Grid
}

// NewDocument builds a document for a timetable result. The title names the
// group and the sheet the same way the status line does.
func NewDocument(r timetable.Result) Document {
	return Document{
		Title: r.Caption(),
		Grid:  timetable.BuildGrid(r),
	}
}

// Write renders doc in the given format to w. A grid without days or slots
// still yields a document holding the caption and the header row.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatHTML:
		return writeHTML(w, doc)
	default:
		return writePDF(w, doc)
	}
}

// WriteFile renders doc into path. The file is written to a temporary file
// in the same directory and renamed into place, so readers never observe a
// partial document.
//
// Parameters:
//   - path: The destination file; its directory must exist.
//   - f: The document format, usually FormatFor(path).
//   - doc: The caption and grid to render.
//
// Returns:
//   - error: A ValidationError when the PDF fonts cannot draw the text, or a
//     wrapped I/O error when the file cannot be written.
func WriteFile(path string, f Format, doc Document) error {
	var buf bytes.Buffer
	if err := Write(&buf, f, doc); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.WrapError(err, "writing %s", path)
	}
	return nil
}

// SuffixPath inserts suffix before the extension of path:
// "out/timetable.pdf" with "2O34" gives "out/timetable-2O34.pdf".
func SuffixPath(path, suffix string) string {
	suffix = sanitize(suffix)
	if suffix == "" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + suffix + ext
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '/' || r == '\\' || r == '.':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(s))
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".schedforge-export-*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
