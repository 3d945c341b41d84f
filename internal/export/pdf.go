package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/timetable"
)

// Page setup of the exported document.
const (
	pageSize    = "Letter"
	orientation = "L"
	unit        = "in"
	margin      = 0.5

	titleHeight = 0.4
	rowHeight   = 0.3
	fontFamily  = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	headerFill = rgb{232, 232, 232}
	borderGray = rgb{153, 153, 153}

	categoryFill = map[timetable.Category]rgb{
		timetable.CategoryLecture:   {207, 226, 255},
		timetable.CategoryTutorial:  {209, 242, 216},
		timetable.CategoryPractical: {255, 229, 194},
	}
)

// writePDF draws doc with the core Helvetica font, which only encodes
// Windows-1252. Text outside that set is refused rather than garbled; the
// HTML export has no such limit.
func writePDF(w io.Writer, doc Document) error {
	if text, ok := unencodable(doc); ok {
		return apperrors.ValidationError{
			Field:   "pdf",
			Message: fmt.Sprintf("%q cannot be drawn with the built-in PDF font; export to .html instead", text),
		}
	}
	pdf := fpdf.New(orientation, unit, pageSize, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("schedforge", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	header := doc.Grid.Header()
	colW := (pageW - 2*margin) / float64(len(header))
	bottom := pageH - margin

	drawHeader := func() {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
		for _, h := range header {
			pdf.CellFormat(colW, rowHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(rowHeight)
		pdf.SetFont(fontFamily, "", 9)
	}

	pdf.AddPage()
	pdf.SetDrawColor(borderGray.r, borderGray.g, borderGray.b)
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, titleHeight, tr(doc.Title), "", 1, "L", false, 0, "")
	drawHeader()

	for _, row := range doc.Grid.Rows {
		if pdf.GetY()+rowHeight > bottom {
			pdf.AddPage()
			drawHeader()
		}
		pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
		pdf.CellFormat(colW, rowHeight, tr(row.Time), "1", 0, "C", true, 0, "")
		for _, cell := range row.Cells {
			fill, ok := categoryFill[cell.Category]
			if ok {
				pdf.SetFillColor(fill.r, fill.g, fill.b)
			}
			pdf.CellFormat(colW, rowHeight, tr(cell.Code), "1", 0, "C", ok, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// unencodable returns the first text of doc that has a rune outside
// Windows-1252.
func unencodable(doc Document) (string, bool) {
	texts := append([]string{doc.Title}, doc.Grid.Header()...)
	for _, row := range doc.Grid.Rows {
		texts = append(texts, row.Time)
		for _, cell := range row.Cells {
			texts = append(texts, cell.Code)
		}
	}
	for _, text := range texts {
		for _, r := range text {
			if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
				return text, true
			}
		}
	}
	return "", false
}
