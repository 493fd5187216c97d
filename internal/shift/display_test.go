package shift

import (
	"testing"
	"time"

	"fuelops/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName_HourBoundaries(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, "Night Shift"},
		{6, "Morning Shift"},
		{13, "Morning Shift"},
		{14, "Evening Shift"},
		{21, "Evening Shift"},
		{22, "Night Shift"},
		{0, "Night Shift"},
		{23, "Night Shift"},
	}

	for _, tt := range tests {
		start := time.Date(2026, 3, 14, tt.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tt.want, DisplayName(start), "hour %d", tt.hour)
	}
}

func TestDisplayNumber(t *testing.T) {
	assert.Equal(t, "SH-007", DisplayNumber(&models.Shift{ShiftNumber: 7}))
	assert.Equal(t, "SH-123", DisplayNumber(&models.Shift{ShiftNumber: 123}))
}

func TestFormatDuration_Floors(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{125 * time.Minute, "2h 5m"},
		{125*time.Minute + 59*time.Second, "2h 5m"}, // floors, never rounds up
		{59 * time.Second, "0h 0m"},
		{3 * time.Hour, "3h 0m"},
		{2*time.Hour + 59*time.Minute + 59*time.Second, "2h 59m"},
		{-time.Minute, "0h 0m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d), "duration %v", tt.d)
	}
}

func TestDuration_ActiveUsesNow(t *testing.T) {
	start := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	now := start.Add(90 * time.Minute)
	s := &models.Shift{StartTime: start.Unix()}

	assert.Equal(t, 90*time.Minute, Duration(s, now))
}

func TestDuration_ClosedUsesEndTime(t *testing.T) {
	start := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour).Unix()
	now := start.Add(48 * time.Hour) // ignored once closed
	s := &models.Shift{StartTime: start.Unix(), EndTime: &end}

	assert.Equal(t, 8*time.Hour, Duration(s, now))
}

func TestCashVariance(t *testing.T) {
	closing := 6200.0
	s := &models.Shift{OpeningCash: 1000, CashCollected: 5000, ClosingCash: &closing}
	variance, ok := CashVariance(s)
	assert.True(t, ok)
	assert.InDelta(t, 200, variance, 0.001)

	short := 5800.0
	s.ClosingCash = &short
	variance, ok = CashVariance(s)
	assert.True(t, ok)
	assert.InDelta(t, -200, variance, 0.001)
}

func TestCashVariance_NotAvailableWhileActive(t *testing.T) {
	s := &models.Shift{OpeningCash: 1000, Status: models.ShiftStatusActive}
	_, ok := CashVariance(s)
	assert.False(t, ok)
}
