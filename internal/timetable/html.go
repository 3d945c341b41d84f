package timetable

import (
	"html/template"
	"io"
)

var tableTemplate = template.Must(template.New("table").Parse(
	`<table><thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead><tbody>` +
		`{{range .Rows}}<tr><td>{{.Time}}</td>{{range .Cells}}<td class="{{.Category.CSSClass}}">{{.Code}}</td>{{end}}</tr>{{end}}` +
		`</tbody></table>`))

// WriteHTML renders g as an HTML <table> fragment. Codes and labels are
// escaped.
func (g Grid) WriteHTML(w io.Writer) error {
	return tableTemplate.Execute(w, g)
}
