package excel

import (
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/dockops-activity/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the activity report as a workbook with a summary sheet
// and a detail sheet carrying the same columns as the CSV export.
func (g *Generator) Generate(report model.ActivityReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	detailSheet := "Logs"
	if _, err := file.NewSheet(detailSheet); err != nil {
		return nil, err
	}
	if err := g.writeDetail(file, detailSheet, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.ActivityReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Report")
	set("B1", report.Title)
	set("A2", "Workflow")
	set("B2", string(report.Workflow))
	set("A3", "Generated")
	set("B3", formatDateTime(report.GeneratedAt))
	set("A4", "Period start")
	set("B4", formatOptionalDate(report.PeriodStart))
	set("A5", "Period end")
	set("B5", formatOptionalDate(report.PeriodEnd))
	set("A6", "Records")
	set("B6", report.RecordCount())

	_ = file.SetColWidth(sheet, "A", "A", 18)
	_ = file.SetColWidth(sheet, "B", "B", 36)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, report model.ActivityReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	for i, header := range report.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}
	for rowIdx, row := range report.Rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			set(cell, value)
		}
	}

	if len(report.Headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(report.Headers))
		_ = file.SetColWidth(sheet, "A", last, 22)
	}
	return nil
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
