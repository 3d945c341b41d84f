// Package workbook loads the spreadsheet the user selected. A local check with
// excelize lists its tabs when it can; the bytes are uploaded either way and
// the backend has the final word on whether they form a timetable.
package workbook

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/agbru/schedforge/internal/errors"
)

// File is the selected spreadsheet held client-side. It is uploaded
// unchanged with every backend call.
type File struct {
	Name string
	Data []byte
	// Sheets lists the tab names found locally. Informational only: the
	// backend's own sheet listing is authoritative.
	Sheets []string
	// PreflightErr records why the data could not be opened locally as a
	// workbook. Such a file is still uploaded.
	PreflightErr error
}

// Empty reports whether no file is selected.
func (f File) Empty() bool {
	return len(f.Data) == 0
}

// Size returns the size of the file in bytes.
func (f File) Size() int {
	return len(f.Data)
}

// Open reads path. An empty path or file, or one that cannot be read, is an
// error; anything else yields a File.
func Open(path string) (File, error) {
	if path == "" {
		return File{}, apperrors.ValidationError{Field: "file", Message: "no file selected"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, apperrors.WrapError(err, "reading %s", path)
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes wraps data as a File named name.
//
// Parameters:
//   - name: The display name, usually the base name of the path.
//   - data: The raw file content.
//
// Returns:
//   - File: The file to upload. When excelize cannot open data, Sheets is
//     empty and PreflightErr says why.
//   - error: A ValidationError if data is empty.
func FromBytes(name string, data []byte) (File, error) {
	if len(data) == 0 {
		return File{}, apperrors.ValidationError{Field: "file", Message: fmt.Sprintf("%s is empty", name)}
	}
	f := File{Name: name, Data: data}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		f.PreflightErr = apperrors.ValidationError{Field: "file", Message: fmt.Sprintf("%s is not a spreadsheet: %v", name, err)}
		return f, nil
	}
	defer wb.Close()

	f.Sheets = wb.GetSheetList()
	return f, nil
}
