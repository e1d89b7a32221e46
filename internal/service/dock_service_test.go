package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/dockops-activity/internal/config"
	"github.com/nurpe/dockops-activity/internal/model"
	"github.com/nurpe/dockops-activity/internal/store"
)

type stubGenerator struct {
	content []byte
}

func (g stubGenerator) Generate(model.ActivityReport) ([]byte, error) {
	return g.content, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Dock: config.DockConfig{
			Transporters: []string{"DHL Logistics", "Maersk Line"},
			Consignors:   []string{"Sunrise Agro", "Zenith Components"},
			Consignees:   []string{"Eastern Exports", "Westside Warehouse"},
		},
	}
}

func newTestService() (*DockService, *store.Store) {
	st := store.New()
	svc := NewDockService(st, stubGenerator{content: []byte("xlsx")}, stubGenerator{content: []byte("pdf")}, testConfig())
	return svc, st
}

func validDispatchInput() DispatchDockInInput {
	return DispatchDockInInput{
		VehicleNumber:   "mh12ab1234",
		TransporterName: "DHL Logistics",
		Consignor:       "Sunrise Agro",
		Consignee:       "Eastern Exports",
	}
}

func validReceivingInput() ReceivingDockInInput {
	return ReceivingDockInInput{
		VehicleNumber: "tn01qq4455",
		VendorCode:    "V-9982",
		SRVNumber:     "SRV-2023-001",
		PersonnelID:   "USER-101",
	}
}

func TestDockInDispatchNormalizesVehicleNumber(t *testing.T) {
	svc, _ := newTestService()

	log, err := svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)
	assert.Equal(t, "MH12AB1234", log.VehicleNumber)
	assert.Equal(t, model.LogStatusDocked, log.Status)
}

func TestDockInDispatchValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DispatchDockInInput)
	}{
		{"empty vehicle number", func(in *DispatchDockInInput) { in.VehicleNumber = "  " }},
		{"empty transporter", func(in *DispatchDockInInput) { in.TransporterName = "" }},
		{"empty consignor", func(in *DispatchDockInInput) { in.Consignor = "" }},
		{"empty consignee", func(in *DispatchDockInInput) { in.Consignee = "" }},
		{"unknown transporter", func(in *DispatchDockInInput) { in.TransporterName = "Nope Freight" }},
		{"unknown consignor", func(in *DispatchDockInInput) { in.Consignor = "Nobody Ltd" }},
		{"unknown consignee", func(in *DispatchDockInInput) { in.Consignee = "Nowhere Inc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService()
			in := validDispatchInput()
			tt.mutate(&in)

			_, err := svc.DockInDispatch(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, st.AllDispatch(), "rejected dock-in must not mutate the store")
		})
	}
}

func TestDockInReceivingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ReceivingDockInInput)
	}{
		{"empty vehicle number", func(in *ReceivingDockInInput) { in.VehicleNumber = "" }},
		{"empty vendor code", func(in *ReceivingDockInInput) { in.VendorCode = " " }},
		{"empty srv number", func(in *ReceivingDockInInput) { in.SRVNumber = "" }},
		{"empty personnel id", func(in *ReceivingDockInInput) { in.PersonnelID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService()
			in := validReceivingInput()
			tt.mutate(&in)

			_, err := svc.DockInReceiving(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, st.AllReceiving())
		})
	}
}

func TestDockOutUnknownID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.DockOutDispatch(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.DockOutReceiving(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportDispatchCSV(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)
	_, err = svc.DockOutDispatch(created.ID)
	require.NoError(t, err)

	result, err := svc.ExportDispatch(DispatchFilter{}, FormatCSV)
	require.NoError(t, err)

	wantName := fmt.Sprintf("dispatch_report_%s.csv", time.Now().Format("2006-01-02"))
	assert.Equal(t, wantName, result.FileName)
	assert.Equal(t, 1, result.RecordCount)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)

	text := string(result.Content)
	assert.True(t, strings.HasPrefix(text, "Log ID,Vehicle Number,Transporter"))
	assert.Contains(t, text, "MH12AB1234")
	assert.Contains(t, text, "COMPLETED")

	history := svc.Downloads()
	require.Len(t, history, 1, "a successful export registers exactly one history entry")
	assert.Equal(t, wantName, history[0].FileName)
	assert.Equal(t, 1, history[0].RecordCount)
	assert.Equal(t, model.WorkflowDispatch, history[0].Workflow)
}

func TestExportDispatchExcludesActiveLogs(t *testing.T) {
	svc, _ := newTestService()

	// One completed, one still docked.
	completed, err := svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)
	_, err = svc.DockOutDispatch(completed.ID)
	require.NoError(t, err)
	_, err = svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)

	result, err := svc.ExportDispatch(DispatchFilter{}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordCount)
}

func TestExportNoMatchingData(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ExportDispatch(DispatchFilter{}, FormatCSV)
	assert.ErrorIs(t, err, ErrNoMatchingData)
	assert.Empty(t, svc.Downloads(), "failed export must not register history")
}

func TestExportDateRangeExcludesEverything(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)
	_, err = svc.DockOutDispatch(created.ID)
	require.NoError(t, err)

	past := time.Date(2001, 1, 1, 0, 0, 0, 0, time.Local)
	_, err = svc.ExportDispatch(DispatchFilter{Dates: DateRange{Start: &past, End: &past}}, FormatCSV)
	assert.ErrorIs(t, err, ErrNoMatchingData)
	assert.Empty(t, svc.Downloads())
}

func TestExportAllIncludesDockedLogs(t *testing.T) {
	svc, _ := newTestService()

	completed, err := svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)
	_, err = svc.DockOutDispatch(completed.ID)
	require.NoError(t, err)
	_, err = svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)

	result, err := svc.ExportAllDispatch(FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecordCount)
	assert.True(t, strings.HasPrefix(result.FileName, "all_dispatch_history_"))
	assert.Contains(t, string(result.Content), ",-,", "docked logs render a dash for Time Out")
}

func TestExportReceivingFiltered(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.DockInReceiving(validReceivingInput())
	require.NoError(t, err)
	_, err = svc.DockOutReceiving(first.ID)
	require.NoError(t, err)

	other := validReceivingInput()
	other.VendorCode = "X-1000"
	second, err := svc.DockInReceiving(other)
	require.NoError(t, err)
	_, err = svc.DockOutReceiving(second.ID)
	require.NoError(t, err)

	result, err := svc.ExportReceiving(ReceivingFilter{VendorCode: "v-99"}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordCount)
	assert.True(t, strings.HasPrefix(result.FileName, "receiving_report_"))

	history := svc.Downloads()
	require.Len(t, history, 1)
	assert.Equal(t, model.WorkflowReceiving, history[0].Workflow)
}

func TestExportBinaryFormats(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)
	_, err = svc.DockOutDispatch(created.ID)
	require.NoError(t, err)

	xlsx, err := svc.ExportDispatch(DispatchFilter{}, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), xlsx.Content)
	assert.True(t, strings.HasSuffix(xlsx.FileName, ".xlsx"))

	pdf, err := svc.ExportDispatch(DispatchFilter{}, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), pdf.Content)
	assert.Equal(t, "application/pdf", pdf.ContentType)
}

func TestRedownloadRegeneratesFromCurrentState(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)
	_, err = svc.DockOutDispatch(created.ID)
	require.NoError(t, err)

	_, err = svc.ExportAllDispatch(FormatCSV)
	require.NoError(t, err)
	entry := svc.Downloads()[0]

	// Data changes after the original export.
	_, err = svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)

	result, err := svc.Redownload(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecordCount, "redownload reflects current data, not the snapshot")

	history := svc.Downloads()
	assert.Len(t, history, 2, "redownload registers a fresh history entry")
}

func TestRedownloadUnknownID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Redownload(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountDownloadsAndClearHistory(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.DockInDispatch(validDispatchInput())
	require.NoError(t, err)
	_, err = svc.DockOutDispatch(d.ID)
	require.NoError(t, err)
	r, err := svc.DockInReceiving(validReceivingInput())
	require.NoError(t, err)
	_, err = svc.DockOutReceiving(r.ID)
	require.NoError(t, err)

	_, err = svc.ExportDispatch(DispatchFilter{}, FormatCSV)
	require.NoError(t, err)
	_, err = svc.ExportReceiving(ReceivingFilter{}, FormatCSV)
	require.NoError(t, err)

	stats := svc.CountDownloads()
	assert.Equal(t, DownloadStats{Total: 2, Dispatch: 1, Receiving: 1}, stats)

	svc.ClearHistory()
	assert.Empty(t, svc.Downloads())
	assert.Equal(t, DownloadStats{}, svc.CountDownloads())
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		raw  string
		want ExportFormat
		ok   bool
	}{
		{"", FormatCSV, true},
		{"csv", FormatCSV, true},
		{"CSV", FormatCSV, true},
		{"xlsx", FormatXLSX, true},
		{"excel", FormatXLSX, true},
		{"pdf", FormatPDF, true},
		{"doc", "", false},
	}

	for _, tt := range tests {
		got, err := ParseExportFormat(tt.raw)
		if tt.ok {
			require.NoError(t, err, tt.raw)
			assert.Equal(t, tt.want, got)
		} else {
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	}
}
