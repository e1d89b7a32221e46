package model

import (
	"time"

	"github.com/google/uuid"
)

type LogStatus string

const (
	LogStatusDocked    LogStatus = "DOCKED"
	LogStatusCompleted LogStatus = "COMPLETED"
)

type Workflow string

const (
	WorkflowDispatch  Workflow = "DISPATCH"
	WorkflowReceiving Workflow = "RECEIVING"
)

// VehicleLog is the common part of a dock activity record. TimestampOut is
// nil exactly while the vehicle is still docked; Status mirrors that.
type VehicleLog struct {
	ID            uuid.UUID  `json:"id"`
	VehicleNumber string     `json:"vehicle_number"`
	TimestampIn   time.Time  `json:"timestamp_in"`
	TimestampOut  *time.Time `json:"timestamp_out,omitempty"`
	Status        LogStatus  `json:"status"`
}

type DispatchLog struct {
	VehicleLog
	TransporterName string `json:"transporter_name"`
	Consignor       string `json:"consignor"`
	Consignee       string `json:"consignee"`
}

type ReceivingLog struct {
	VehicleLog
	VendorCode  string `json:"vendor_code"`
	SRVNumber   string `json:"srv_number"`
	PersonnelID string `json:"personnel_id"`
}

// DownloadLog records a past export. It is a point-in-time snapshot of the
// file name and row count only; the underlying logs may change afterwards.
type DownloadLog struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	Date        time.Time `json:"date"`
	RecordCount int       `json:"record_count"`
	Workflow    Workflow  `json:"type"`
}

// Duration returns the elapsed dock time for display.
func (l VehicleLog) Duration() string {
	return FormatDuration(l.TimestampIn, l.TimestampOut)
}
