package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/dockops-activity/internal/config"
	"github.com/nurpe/dockops-activity/internal/csvexport"
	"github.com/nurpe/dockops-activity/internal/model"
	"github.com/nurpe/dockops-activity/internal/store"
)

// DocumentGenerator renders an activity report as a binary document
// (workbook or PDF). CSV is rendered in-process by csvexport.
type DocumentGenerator interface {
	Generate(report model.ActivityReport) ([]byte, error)
}

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, raw)
	}
}

const (
	kindDispatchReport      = "dispatch_report"
	kindReceivingReport     = "receiving_report"
	kindAllDispatchHistory  = "all_dispatch_history"
	kindAllReceivingHistory = "all_receiving_history"
)

type DockService struct {
	store *store.Store
	excel DocumentGenerator
	pdf   DocumentGenerator
	cfg   *config.Config
}

func NewDockService(st *store.Store, excel, pdf DocumentGenerator, cfg *config.Config) *DockService {
	return &DockService{
		store: st,
		excel: excel,
		pdf:   pdf,
		cfg:   cfg,
	}
}

type DispatchDockInInput struct {
	VehicleNumber   string
	TransporterName string
	Consignor       string
	Consignee       string
}

type ReceivingDockInInput struct {
	VehicleNumber string
	VendorCode    string
	SRVNumber     string
	PersonnelID   string
}

// DockInDispatch validates the form fields and creates a DOCKED dispatch
// log. The view pre-validates, but empty fields are rejected here too so a
// partial record can never enter the store.
func (s *DockService) DockInDispatch(in DispatchDockInInput) (model.DispatchLog, error) {
	fields := store.DispatchFields{
		VehicleNumber:   strings.ToUpper(strings.TrimSpace(in.VehicleNumber)),
		TransporterName: strings.TrimSpace(in.TransporterName),
		Consignor:       strings.TrimSpace(in.Consignor),
		Consignee:       strings.TrimSpace(in.Consignee),
	}
	if fields.VehicleNumber == "" {
		return model.DispatchLog{}, fmt.Errorf("%w: vehicle_number is required", ErrInvalidInput)
	}
	if fields.TransporterName == "" {
		return model.DispatchLog{}, fmt.Errorf("%w: transporter_name is required", ErrInvalidInput)
	}
	if fields.Consignor == "" {
		return model.DispatchLog{}, fmt.Errorf("%w: consignor is required", ErrInvalidInput)
	}
	if fields.Consignee == "" {
		return model.DispatchLog{}, fmt.Errorf("%w: consignee is required", ErrInvalidInput)
	}
	if !containsValue(s.cfg.Dock.Transporters, fields.TransporterName) {
		return model.DispatchLog{}, fmt.Errorf("%w: unknown transporter %q", ErrInvalidInput, fields.TransporterName)
	}
	if !containsValue(s.cfg.Dock.Consignors, fields.Consignor) {
		return model.DispatchLog{}, fmt.Errorf("%w: unknown consignor %q", ErrInvalidInput, fields.Consignor)
	}
	if !containsValue(s.cfg.Dock.Consignees, fields.Consignee) {
		return model.DispatchLog{}, fmt.Errorf("%w: unknown consignee %q", ErrInvalidInput, fields.Consignee)
	}

	return s.store.DockInDispatch(fields), nil
}

func (s *DockService) DockInReceiving(in ReceivingDockInInput) (model.ReceivingLog, error) {
	fields := store.ReceivingFields{
		VehicleNumber: strings.ToUpper(strings.TrimSpace(in.VehicleNumber)),
		VendorCode:    strings.TrimSpace(in.VendorCode),
		SRVNumber:     strings.TrimSpace(in.SRVNumber),
		PersonnelID:   strings.TrimSpace(in.PersonnelID),
	}
	if fields.VehicleNumber == "" {
		return model.ReceivingLog{}, fmt.Errorf("%w: vehicle_number is required", ErrInvalidInput)
	}
	if fields.VendorCode == "" {
		return model.ReceivingLog{}, fmt.Errorf("%w: vendor_code is required", ErrInvalidInput)
	}
	if fields.SRVNumber == "" {
		return model.ReceivingLog{}, fmt.Errorf("%w: srv_number is required", ErrInvalidInput)
	}
	if fields.PersonnelID == "" {
		return model.ReceivingLog{}, fmt.Errorf("%w: personnel_id is required", ErrInvalidInput)
	}

	return s.store.DockInReceiving(fields), nil
}

func (s *DockService) DockOutDispatch(id uuid.UUID) (model.DispatchLog, error) {
	log, err := s.store.DockOutDispatch(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.DispatchLog{}, fmt.Errorf("%w: dispatch log %s", ErrNotFound, id)
		}
		return model.DispatchLog{}, err
	}
	return log, nil
}

func (s *DockService) DockOutReceiving(id uuid.UUID) (model.ReceivingLog, error) {
	log, err := s.store.DockOutReceiving(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.ReceivingLog{}, fmt.Errorf("%w: receiving log %s", ErrNotFound, id)
		}
		return model.ReceivingLog{}, err
	}
	return log, nil
}

func (s *DockService) ActiveDispatch() []model.DispatchLog {
	return s.store.ActiveDispatch()
}

func (s *DockService) CompletedDispatch(f DispatchFilter) []model.DispatchLog {
	return filterDispatch(s.store.CompletedDispatch(), f)
}

func (s *DockService) ActiveReceiving() []model.ReceivingLog {
	return s.store.ActiveReceiving()
}

func (s *DockService) CompletedReceiving(f ReceivingFilter) []model.ReceivingLog {
	return filterReceiving(s.store.CompletedReceiving(), f)
}

// ReferenceLists returns the fixed transporter/consignor/consignee sets the
// dispatch form picks from.
func (s *DockService) ReferenceLists() (transporters, consignors, consignees []string) {
	return s.cfg.Dock.Transporters, s.cfg.Dock.Consignors, s.cfg.Dock.Consignees
}

type ExportResult struct {
	FileName    string
	Content     []byte
	ContentType string
	RecordCount int
}

// ExportDispatch renders the completed dispatch logs matching the filter.
// An empty result reports ErrNoMatchingData: no file is produced and no
// history entry is registered.
func (s *DockService) ExportDispatch(f DispatchFilter, format ExportFormat) (*ExportResult, error) {
	logs := filterDispatch(s.store.CompletedDispatch(), f)
	return s.exportDispatchLogs(logs, kindDispatchReport, "Dispatch Activity Report", f.Dates, format)
}

func (s *DockService) ExportReceiving(f ReceivingFilter, format ExportFormat) (*ExportResult, error) {
	logs := filterReceiving(s.store.CompletedReceiving(), f)
	return s.exportReceivingLogs(logs, kindReceivingReport, "Receiving Activity Report", f.Dates, format)
}

// ExportAllDispatch renders every dispatch log, docked and completed. This
// is the "export all history" action of the downloads page.
func (s *DockService) ExportAllDispatch(format ExportFormat) (*ExportResult, error) {
	return s.exportDispatchLogs(s.store.AllDispatch(), kindAllDispatchHistory, "Dispatch History", DateRange{}, format)
}

func (s *DockService) ExportAllReceiving(format ExportFormat) (*ExportResult, error) {
	return s.exportReceivingLogs(s.store.AllReceiving(), kindAllReceivingHistory, "Receiving History", DateRange{}, format)
}

// Redownload regenerates an export from the current state of the workflow
// named by the history entry. The original bytes are not retained, so the
// content and row count may differ from the historical entry; a fresh
// history entry is registered for the new file.
func (s *DockService) Redownload(id uuid.UUID) (*ExportResult, error) {
	entry, err := s.store.FindDownload(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: download %s", ErrNotFound, id)
		}
		return nil, err
	}

	switch entry.Workflow {
	case model.WorkflowDispatch:
		return s.ExportAllDispatch(FormatCSV)
	case model.WorkflowReceiving:
		return s.ExportAllReceiving(FormatCSV)
	default:
		return nil, fmt.Errorf("%w: unknown workflow %q", ErrInvalidInput, entry.Workflow)
	}
}

func (s *DockService) Downloads() []model.DownloadLog {
	return s.store.Downloads()
}

type DownloadStats struct {
	Total     int `json:"total"`
	Dispatch  int `json:"dispatch"`
	Receiving int `json:"receiving"`
}

func (s *DockService) CountDownloads() DownloadStats {
	stats := DownloadStats{}
	for _, entry := range s.store.Downloads() {
		stats.Total++
		switch entry.Workflow {
		case model.WorkflowDispatch:
			stats.Dispatch++
		case model.WorkflowReceiving:
			stats.Receiving++
		}
	}
	return stats
}

func (s *DockService) ClearHistory() {
	s.store.ClearHistory()
}

func (s *DockService) exportDispatchLogs(logs []model.DispatchLog, kind, title string, dates DateRange, format ExportFormat) (*ExportResult, error) {
	if len(logs) == 0 {
		return nil, ErrNoMatchingData
	}
	table := csvexport.FormatDispatch(logs)
	return s.renderExport(table, kind, title, model.WorkflowDispatch, dates, format)
}

func (s *DockService) exportReceivingLogs(logs []model.ReceivingLog, kind, title string, dates DateRange, format ExportFormat) (*ExportResult, error) {
	if len(logs) == 0 {
		return nil, ErrNoMatchingData
	}
	table := csvexport.FormatReceiving(logs)
	return s.renderExport(table, kind, title, model.WorkflowReceiving, dates, format)
}

func (s *DockService) renderExport(table csvexport.Table, kind, title string, workflow model.Workflow, dates DateRange, format ExportFormat) (*ExportResult, error) {
	now := time.Now()
	report := model.ActivityReport{
		Title:       title,
		Workflow:    workflow,
		GeneratedAt: now,
		PeriodStart: dates.Start,
		PeriodEnd:   dates.End,
		Headers:     table.Headers,
		Rows:        table.Rows,
	}

	var content []byte
	var contentType string
	var err error
	switch format {
	case FormatCSV:
		content = []byte(csvexport.Serialize(table))
		contentType = "text/csv; charset=utf-8"
	case FormatXLSX:
		content, err = s.excel.Generate(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		content, err = s.pdf.Generate(report)
		contentType = "application/pdf"
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, format)
	}
	if err != nil {
		return nil, err
	}

	fileName := buildFileName(kind, now, format)
	s.store.RegisterDownload(fileName, len(table.Rows), workflow)

	return &ExportResult{
		FileName:    fileName,
		Content:     content,
		ContentType: contentType,
		RecordCount: len(table.Rows),
	}, nil
}

func buildFileName(kind string, at time.Time, format ExportFormat) string {
	return fmt.Sprintf("%s_%s.%s", kind, at.Format("2006-01-02"), format)
}

func containsValue(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
