package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		end := base.Add(d)
		return &end
	}

	tests := []struct {
		name string
		end  *time.Time
		want string
	}{
		{"no end", nil, "0m"},
		{"same instant", at(0), "0m"},
		{"under a minute", at(45 * time.Second), "0m"},
		{"minutes only", at(25 * time.Minute), "25m"},
		{"exactly one hour", at(time.Hour), "1h 0m"},
		{"hour and a half", at(90 * time.Minute), "1h 30m"},
		{"floors partial minute", at(90*time.Minute + 59*time.Second), "1h 30m"},
		{"multi hour", at(26*time.Hour + 5*time.Minute), "26h 5m"},
		{"end before start", at(-time.Minute), "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(base, tt.end))
		})
	}
}

func TestVehicleLogDuration(t *testing.T) {
	in := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(2*time.Hour + 15*time.Minute)

	open := VehicleLog{TimestampIn: in, Status: LogStatusDocked}
	assert.Equal(t, "0m", open.Duration())

	closed := VehicleLog{TimestampIn: in, TimestampOut: &out, Status: LogStatusCompleted}
	assert.Equal(t, "2h 15m", closed.Duration())
}
