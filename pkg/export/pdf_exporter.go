package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const pageWidthMM = 277.0

// PDFExporter renders tables into a landscape A4 document.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays the table out with column widths proportional to content length.
func (e *PDFExporter) Render(table Table) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one column")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	if table.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, table.Title, "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	widths := columnWidths(table)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, column := range table.Columns {
		pdf.CellFormat(widths[i], 7, column, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range table.Rows {
		for i, cell := range table.cells(row) {
			pdf.CellFormat(widths[i], 6, truncate(pdf, cell, widths[i]-2), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(table Table) []float64 {
	weights := make([]float64, len(table.Columns))
	for i, column := range table.Columns {
		weights[i] = float64(len(column))
	}
	for _, row := range table.Rows {
		for i, cell := range table.cells(row) {
			if l := float64(len(cell)); l > weights[i] {
				weights[i] = l
			}
		}
	}
	var total float64
	for i := range weights {
		if weights[i] < 4 {
			weights[i] = 4
		}
		if weights[i] > 60 {
			weights[i] = 60
		}
		total += weights[i]
	}
	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = pageWidthMM * w / total
	}
	return widths
}

func truncate(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
