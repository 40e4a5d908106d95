package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a tabular PDF. Timetable grids are
// wide (one column per slot plus the day column), so rendering flips
// to landscape once the column count no longer fits a portrait page
// comfortably.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

const landscapeThreshold = 6

// Render creates a PDF document with an optional title and table body.
// The first column (the day name in a timetable grid) is narrower than
// the others, and slot cells share the remainder evenly.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}

	orientation := "P"
	pageWidth := 190.0
	if len(data.Headers) >= landscapeThreshold {
		orientation = "L"
		pageWidth = 277.0
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	widths := columnWidths(len(data.Headers), pageWidth)

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	writeHeader()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()
	for _, row := range data.Rows {
		if pdf.GetY()+7 > pageHeight-bottomMargin {
			pdf.AddPage()
			writeHeader()
		}
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths gives the first column two thirds of a regular column's
// width (day names are short) and splits the rest evenly.
func columnWidths(n int, pageWidth float64) []float64 {
	widths := make([]float64, n)
	if n == 1 {
		widths[0] = pageWidth
		return widths
	}
	first := pageWidth / float64(n) * 0.66
	rest := (pageWidth - first) / float64(n-1)
	widths[0] = first
	for i := 1; i < n; i++ {
		widths[i] = rest
	}
	return widths
}
