package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var htmlFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006 15:04")
	},
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"area": func(v float64) string {
		return fmt.Sprintf("%.4f", v)
	},
}

var htmlTemplate = template.Must(template.New("quote").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Quotation {{.Code}} rev. {{.RevisionNumber}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.total { font-weight: bold; }
</style>
</head>
<body>
<h1>Quotation {{.Code}}{{if gt .RevisionNumber 1}} &mdash; revision {{.RevisionNumber}}{{end}}</h1>
<p>
Client: <strong>{{.ClientName}}</strong><br>
Order: {{.OrderNumber}}<br>
Date: {{formatDate .CreatedAt}}<br>
{{if .Measure}}Measure: {{.Measure}}<br>{{end}}
{{if .Finish}}Finish: {{.Finish}}<br>{{end}}
</p>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<table>
<tr>
<th>#</th><th>Material</th><th>&Oslash; in (mm)</th><th>&Oslash; out (mm)</th>
<th>Length (mm)</th><th>Turns</th><th>Development (mm)</th>
<th>Area (m&sup2;)</th><th>Cost</th>
</tr>
{{range .Layers}}
<tr>
<td>{{.Position}}</td><td>{{.MaterialName}}</td>
<td>{{area .DiameterIn}}</td><td>{{area .DiameterFinal}}</td>
<td>{{area .LengthTotal}}</td><td>{{.Turns}}</td>
<td>{{area .Development}}</td><td>{{area .UsedArea}}</td>
<td>{{money .MarkedCost}}</td>
</tr>
{{end}}
</table>
<table>
<tr><td>Materials</td><td>{{money .MaterialsCost}}</td></tr>
<tr><td>Labor (min)</td><td>{{money .LaborTotalMin}}</td></tr>
<tr><td>Accessories</td><td>{{money .AccessoriesCost}}</td></tr>
<tr><td>Subtotal</td><td>{{money .Subtotal}}</td></tr>
<tr><td>Markup 25%</td><td>{{money .Markup25}}</td></tr>
<tr class="total"><td>Final quote</td><td>{{money .FinalQuote}}</td></tr>
<tr class="total"><td>Client price</td><td>{{money .ClientPrice}}</td></tr>
</table>
</body>
</html>
`))

func renderHTML(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, snap); err != nil {
		return nil, fmt.Errorf("export: render html: %w", err)
	}
	return buf.Bytes(), nil
}
