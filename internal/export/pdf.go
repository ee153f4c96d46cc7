package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// renderPDF lays the quotation out on A4 portrait pages.
func renderPDF(snap Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	title := fmt.Sprintf("Quotation %s", snap.Code)
	if snap.RevisionNumber > 1 {
		title = fmt.Sprintf("%s - revision %d", title, snap.RevisionNumber)
	}
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Client: %s", snap.ClientName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Order: %s", snap.OrderNumber), "", 1, "L", false, 0, "")
	if !snap.CreatedAt.IsZero() {
		pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", snap.CreatedAt.Format("02 Jan 2006")), "", 1, "L", false, 0, "")
	}
	if snap.Description != "" {
		pdf.MultiCell(0, 6, snap.Description, "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{8, 36, 20, 20, 20, 12, 24, 20, 20}
	headers := []string{"#", "Material", "D in", "D out", "Length", "Turns", "Development", "Area m2", "Cost"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, l := range snap.Layers {
		cells := []string{
			fmt.Sprintf("%d", l.Position),
			l.MaterialName,
			fmt.Sprintf("%.2f", l.DiameterIn),
			fmt.Sprintf("%.2f", l.DiameterFinal),
			fmt.Sprintf("%.0f", l.LengthTotal),
			fmt.Sprintf("%d", l.Turns),
			fmt.Sprintf("%.3f", l.Development),
			fmt.Sprintf("%.4f", l.UsedArea),
			fmt.Sprintf("%.2f", l.MarkedCost),
		}
		for i, c := range cells {
			align := "R"
			if i == 1 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	totals := []struct {
		label string
		value float64
	}{
		{"Materials", snap.MaterialsCost},
		{"Labor (min)", snap.LaborTotalMin},
		{"Accessories", snap.AccessoriesCost},
		{"Subtotal", snap.Subtotal},
		{"Markup 25%", snap.Markup25},
		{"Final quote", snap.FinalQuote},
		{"Client price", snap.ClientPrice},
	}
	for i, row := range totals {
		if i >= 5 {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(60, 6, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", row.value), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
