package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/dockops-activity/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

// Generate renders the activity report as a landscape A4 document: a short
// header block followed by the log table.
func (g *Generator) Generate(report model.ActivityReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, report.Title, "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Workflow: %s", report.Workflow), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", formatDateTime(report.GeneratedAt)), "", 1, "C", false, 0, "")
	if report.PeriodStart != nil || report.PeriodEnd != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s",
			formatOptionalDate(report.PeriodStart),
			formatOptionalDate(report.PeriodEnd),
		), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Records: %d", report.RecordCount()), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := columnWidths(pdf, len(report.Headers))
	drawTableRow(pdf, g.fontName, report.Headers, widths, true)
	for _, row := range report.Rows {
		drawTableRow(pdf, g.fontName, row, widths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnWidths(pdf *gofpdf.Fpdf, columns int) []float64 {
	if columns == 0 {
		return nil
	}
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	widths := make([]float64, columns)
	for i := range widths {
		widths[i] = usable / float64(columns)
	}
	return widths
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	size := 8.0
	if header {
		style = "B"
		size = 9.0
	}
	pdf.SetFont(fontName, style, size)
	for i, col := range cols {
		if i >= len(widths) {
			break
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
