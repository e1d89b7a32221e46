package csvexport

import (
	"strings"
	"time"

	"github.com/nurpe/dockops-activity/internal/model"
)

// timeLayout matches the locale-style rendering the reports have always
// used, e.g. "02/01/2006, 15:04:05".
const timeLayout = "02/01/2006, 15:04:05"

// Table is an ordered projection of logs into named columns. Row order
// matches the source collection; the serializer never re-sorts.
type Table struct {
	Headers []string
	Rows    [][]string
}

var dispatchHeaders = []string{
	"Log ID", "Vehicle Number", "Transporter", "Consignor", "Consignee",
	"Time In", "Time Out", "Status",
}

var receivingHeaders = []string{
	"Log ID", "Vehicle Number", "Vendor Code", "SRV Number", "Personnel ID",
	"Time In", "Time Out", "Status",
}

func FormatDispatch(logs []model.DispatchLog) Table {
	rows := make([][]string, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, []string{
			log.ID.String(),
			log.VehicleNumber,
			log.TransporterName,
			log.Consignor,
			log.Consignee,
			formatTime(log.TimestampIn),
			formatTimeOut(log.TimestampOut),
			string(log.Status),
		})
	}
	return Table{Headers: dispatchHeaders, Rows: rows}
}

func FormatReceiving(logs []model.ReceivingLog) Table {
	rows := make([][]string, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, []string{
			log.ID.String(),
			log.VehicleNumber,
			log.VendorCode,
			log.SRVNumber,
			log.PersonnelID,
			formatTime(log.TimestampIn),
			formatTimeOut(log.TimestampOut),
			string(log.Status),
		})
	}
	return Table{Headers: receivingHeaders, Rows: rows}
}

// Serialize renders the table as CSV text. A field is wrapped in double
// quotes only when it contains a comma, a quote or a newline, with internal
// quotes doubled. No trailing newline is appended; downloads of the
// historical files have never carried one, so encoding/csv (which always
// terminates records) is deliberately not used here.
func Serialize(table Table) string {
	lines := make([]string, 0, len(table.Rows)+1)
	lines = append(lines, joinFields(table.Headers))
	for _, row := range table.Rows {
		lines = append(lines, joinFields(row))
	}
	return strings.Join(lines, "\n")
}

func joinFields(fields []string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = escapeField(field)
	}
	return strings.Join(escaped, ",")
}

func escapeField(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func formatTimeOut(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}
