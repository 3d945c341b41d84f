package export

import (
	"bytes"
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 0.5in; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: center; }
th { background: #e8e8e8; }
td.lecture { background: #cfe2ff; }
td.tutorial { background: #d1f2d8; }
td.practical { background: #ffe5c2; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Table}}
</body>
</html>
`))

func writeHTML(w io.Writer, doc Document) error {
	var table bytes.Buffer
	if err := doc.Grid.WriteHTML(&table); err != nil {
		return err
	}
	return pageTemplate.Execute(w, struct {
		Title string
		Table template.HTML
	}{
		Title: doc.Title,
		// Already escaped by the table template.
		Table: template.HTML(table.String()),
	})
}
