package service

import (
	"strings"
	"time"

	"github.com/nurpe/dockops-activity/internal/model"
)

// DateRange bounds a query by the calendar dates of TimestampIn. Start is
// normalized to 00:00:00.000 local and End to 23:59:59.999 local, both
// inclusive. A nil side leaves that side unconstrained.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(startOfDay(*r.Start)) {
		return false
	}
	if r.End != nil && t.After(endOfDay(*r.End)) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Millisecond)
}

// DispatchFilter narrows completed dispatch logs. Fields are exact-match
// against the reference sets; an empty field is unconstrained (the UI's
// "All Transporters" style sentinels map to empty before reaching here).
// Active constraints are ANDed.
type DispatchFilter struct {
	Transporter string
	Consignor   string
	Consignee   string
	Dates       DateRange
}

func (f DispatchFilter) Match(log model.DispatchLog) bool {
	if f.Transporter != "" && log.TransporterName != f.Transporter {
		return false
	}
	if f.Consignor != "" && log.Consignor != f.Consignor {
		return false
	}
	if f.Consignee != "" && log.Consignee != f.Consignee {
		return false
	}
	return f.Dates.Contains(log.TimestampIn)
}

// ReceivingFilter narrows completed receiving logs. Fields are
// case-insensitive substring matches; empty is unconstrained; ANDed.
type ReceivingFilter struct {
	VendorCode  string
	SRVNumber   string
	PersonnelID string
	Dates       DateRange
}

func (f ReceivingFilter) Match(log model.ReceivingLog) bool {
	if !containsFold(log.VendorCode, f.VendorCode) {
		return false
	}
	if !containsFold(log.SRVNumber, f.SRVNumber) {
		return false
	}
	if !containsFold(log.PersonnelID, f.PersonnelID) {
		return false
	}
	return f.Dates.Contains(log.TimestampIn)
}

func containsFold(value, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

// filterDispatch and filterReceiving are pure projections: they never
// mutate the source slice and keep its relative order.
func filterDispatch(logs []model.DispatchLog, f DispatchFilter) []model.DispatchLog {
	result := make([]model.DispatchLog, 0, len(logs))
	for _, log := range logs {
		if f.Match(log) {
			result = append(result, log)
		}
	}
	return result
}

func filterReceiving(logs []model.ReceivingLog, f ReceivingFilter) []model.ReceivingLog {
	result := make([]model.ReceivingLog, 0, len(logs))
	for _, log := range logs {
		if f.Match(log) {
			result = append(result, log)
		}
	}
	return result
}
