package model

import "time"

// ActivityReport is the workbook/document view of an export: the same
// ordered columns the CSV carries plus the header block rendered on the
// summary page.
type ActivityReport struct {
	Title       string
	Workflow    Workflow
	GeneratedAt time.Time
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Headers     []string
	Rows        [][]string
}

func (r ActivityReport) RecordCount() int {
	return len(r.Rows)
}
