package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/dockops-activity/internal/model"
)

// ErrNotFound is returned when a dock-out or redownload references an id
// that is not present in the target collection.
var ErrNotFound = errors.New("record not found")

// Store owns the two per-workflow log collections and the download history.
// All collections are newest-first and live only for the process lifetime.
// Every operation either fully applies or leaves the store unchanged.
type Store struct {
	mu        sync.RWMutex
	dispatch  []model.DispatchLog
	receiving []model.ReceivingLog
	downloads []model.DownloadLog
	now       func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock is used by tests to control timestamps.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

type DispatchFields struct {
	VehicleNumber   string
	TransporterName string
	Consignor       string
	Consignee       string
}

type ReceivingFields struct {
	VehicleNumber string
	VendorCode    string
	SRVNumber     string
	PersonnelID   string
}

func (s *Store) DockInDispatch(fields DispatchFields) model.DispatchLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := model.DispatchLog{
		VehicleLog: model.VehicleLog{
			ID:            uuid.New(),
			VehicleNumber: fields.VehicleNumber,
			TimestampIn:   s.now(),
			Status:        model.LogStatusDocked,
		},
		TransporterName: fields.TransporterName,
		Consignor:       fields.Consignor,
		Consignee:       fields.Consignee,
	}
	s.dispatch = append([]model.DispatchLog{log}, s.dispatch...)
	return log
}

func (s *Store) DockInReceiving(fields ReceivingFields) model.ReceivingLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := model.ReceivingLog{
		VehicleLog: model.VehicleLog{
			ID:            uuid.New(),
			VehicleNumber: fields.VehicleNumber,
			TimestampIn:   s.now(),
			Status:        model.LogStatusDocked,
		},
		VendorCode:  fields.VendorCode,
		SRVNumber:   fields.SRVNumber,
		PersonnelID: fields.PersonnelID,
	}
	s.receiving = append([]model.ReceivingLog{log}, s.receiving...)
	return log
}

// DockOutDispatch completes the log with the given id. A log that is
// already COMPLETED is re-stamped with a fresh TimestampOut; TimestampIn is
// never touched. Returns ErrNotFound, with no mutation, for an unknown id.
func (s *Store) DockOutDispatch(id uuid.UUID) (model.DispatchLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.dispatch {
		if s.dispatch[i].ID == id {
			out := s.now()
			s.dispatch[i].Status = model.LogStatusCompleted
			s.dispatch[i].TimestampOut = &out
			return s.dispatch[i], nil
		}
	}
	return model.DispatchLog{}, ErrNotFound
}

func (s *Store) DockOutReceiving(id uuid.UUID) (model.ReceivingLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.receiving {
		if s.receiving[i].ID == id {
			out := s.now()
			s.receiving[i].Status = model.LogStatusCompleted
			s.receiving[i].TimestampOut = &out
			return s.receiving[i], nil
		}
	}
	return model.ReceivingLog{}, ErrNotFound
}

func (s *Store) ActiveDispatch() []model.DispatchLog {
	return s.dispatchByStatus(model.LogStatusDocked)
}

func (s *Store) CompletedDispatch() []model.DispatchLog {
	return s.dispatchByStatus(model.LogStatusCompleted)
}

func (s *Store) dispatchByStatus(status model.LogStatus) []model.DispatchLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.DispatchLog, 0, len(s.dispatch))
	for _, log := range s.dispatch {
		if log.Status == status {
			result = append(result, log)
		}
	}
	return result
}

func (s *Store) ActiveReceiving() []model.ReceivingLog {
	return s.receivingByStatus(model.LogStatusDocked)
}

func (s *Store) CompletedReceiving() []model.ReceivingLog {
	return s.receivingByStatus(model.LogStatusCompleted)
}

func (s *Store) receivingByStatus(status model.LogStatus) []model.ReceivingLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.ReceivingLog, 0, len(s.receiving))
	for _, log := range s.receiving {
		if log.Status == status {
			result = append(result, log)
		}
	}
	return result
}

// AllDispatch returns the full dispatch collection, docked and completed,
// newest first. The full-history export reads this view.
func (s *Store) AllDispatch() []model.DispatchLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.DispatchLog, len(s.dispatch))
	copy(result, s.dispatch)
	return result
}

func (s *Store) AllReceiving() []model.ReceivingLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.ReceivingLog, len(s.receiving))
	copy(result, s.receiving)
	return result
}

func (s *Store) RegisterDownload(fileName string, recordCount int, workflow model.Workflow) model.DownloadLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := model.DownloadLog{
		ID:          uuid.New(),
		FileName:    fileName,
		Date:        s.now(),
		RecordCount: recordCount,
		Workflow:    workflow,
	}
	s.downloads = append([]model.DownloadLog{entry}, s.downloads...)
	return entry
}

func (s *Store) Downloads() []model.DownloadLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.DownloadLog, len(s.downloads))
	copy(result, s.downloads)
	return result
}

func (s *Store) FindDownload(id uuid.UUID) (model.DownloadLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.downloads {
		if entry.ID == id {
			return entry, nil
		}
	}
	return model.DownloadLog{}, ErrNotFound
}

// ClearHistory empties the download history. Irreversible.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads = nil
}
