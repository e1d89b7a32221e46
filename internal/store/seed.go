package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/dockops-activity/internal/model"
)

// SeedDemoData loads a small fixed data set so a fresh instance has
// something to show. Enabled via DOCK_SEED_DEMO; never used in tests.
func (s *Store) SeedDemoData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dayAgo := now.Add(-24 * time.Hour)
	dayAgoOut := now.Add(-22*time.Hour - 47*time.Minute)

	s.dispatch = []model.DispatchLog{
		{
			VehicleLog: model.VehicleLog{
				ID:            uuid.New(),
				VehicleNumber: "MH12AB1234",
				TimestampIn:   now.Add(-time.Hour),
				Status:        model.LogStatusDocked,
			},
			TransporterName: "DHL Logistics",
			Consignor:       "ABC Manufacturing Ltd",
			Consignee:       "Retail Giant Corp",
		},
		{
			VehicleLog: model.VehicleLog{
				ID:            uuid.New(),
				VehicleNumber: "KA05XY9876",
				TimestampIn:   dayAgo,
				TimestampOut:  &dayAgoOut,
				Status:        model.LogStatusCompleted,
			},
			TransporterName: "FedEx Freight",
			Consignor:       "Global Tech Supplies",
			Consignee:       "City Distribution Center",
		},
	}

	s.receiving = []model.ReceivingLog{
		{
			VehicleLog: model.VehicleLog{
				ID:            uuid.New(),
				VehicleNumber: "TN01QQ4455",
				TimestampIn:   now.Add(-2 * time.Hour),
				Status:        model.LogStatusDocked,
			},
			VendorCode:  "V-9982",
			SRVNumber:   "SRV-2023-001",
			PersonnelID: "USER-101",
		},
	}
}
