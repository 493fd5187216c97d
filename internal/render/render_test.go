package render

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"fuelops/internal/models"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Rendered timestamps use the local zone; pin it for the golden files
	time.Local = time.UTC
	os.Exit(m.Run())
}

func closedShiftFixture() *models.Shift {
	start := time.Date(2026, 3, 14, 6, 30, 0, 0, time.UTC)
	end := start.Add(8*time.Hour + 5*time.Minute).Unix()
	closing := 6200.0

	return &models.Shift{
		ID:            "shift-12",
		ShiftNumber:   12,
		Status:        models.ShiftStatusClosed,
		StartTime:     start.Unix(),
		EndTime:       &end,
		OpeningCash:   1000,
		ClosingCash:   &closing,
		TotalSales:    7000,
		CashCollected: 5000,
		CardPayments:  1200,
		UPIPayments:   800,
		TankReadings: []models.TankReading{
			{TankID: "T-1", TankName: "Tank 1", FuelType: "petrol", OpeningReading: 14250.5, ClosingReading: 14000},
			{TankID: "T-2", TankName: "Tank 2", FuelType: "diesel", OpeningReading: 21780, ClosingReading: 21500},
		},
		PumpReadings: []models.PumpReading{
			{PumpID: "P-1", NozzleID: "N-1", FuelType: "petrol", OpeningReading: 532901.25, ClosingReading: 533140.25},
			{PumpID: "P-2", NozzleID: "N-3", FuelType: "diesel", OpeningReading: 871240, ClosingReading: 871300},
		},
		Discrepancies: []models.Discrepancy{
			{Reason: "Excess cash at close", Amount: 200},
		},
	}
}

func TestShiftDetails_Golden(t *testing.T) {
	s := closedShiftFixture()

	var buf bytes.Buffer
	ShiftDetails(&buf, s, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	goldie.New(t).Assert(t, "shift_details", buf.Bytes())
}

func TestShiftDetails_FlagsShortVariance(t *testing.T) {
	s := closedShiftFixture()
	short := 5800.0
	s.ClosingCash = &short

	var buf bytes.Buffer
	ShiftDetails(&buf, s, time.Now())

	assert.Contains(t, buf.String(), "⚠️ SHORT")
	assert.Contains(t, buf.String(), "₹-200.00")
}

func TestShiftDetails_ActiveDurationFloors(t *testing.T) {
	start := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	s := &models.Shift{
		ShiftNumber: 3,
		Status:      models.ShiftStatusActive,
		StartTime:   start.Unix(),
		OpeningCash: 500,
	}

	var buf bytes.Buffer
	ShiftDetails(&buf, s, start.Add(125*time.Minute))

	assert.Contains(t, buf.String(), "Duration: 2h 5m")
	assert.NotContains(t, buf.String(), "Cash variance", "no variance before close")
}

func TestMonthlySummary_PercentageVerbatim(t *testing.T) {
	rows := []models.MonthlySummaryRow{
		{EmployeeID: "E-1", EmployeeName: "Sunil Yadav", TotalDays: 40, PresentDays: 33, AbsentDays: 5, LeaveDays: 2, AttendancePercentage: "82.5%"},
		{EmployeeID: "E-2", EmployeeName: "Meena Joshi", TotalDays: 40, PresentDays: 36, AbsentDays: 4, AttendancePercentage: "91.0%"},
	}

	var buf bytes.Buffer
	MonthlySummary(&buf, rows)
	out := buf.String()

	// The server string is both the label and the bar width source;
	// 33/40 would be 82.5 too, but the client never does that division
	assert.Contains(t, out, "82.5%")
	assert.Contains(t, out, "[████████████████    ] 82.5%")
	assert.Contains(t, out, "[██████████████████  ] 91.0%")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "["+strings.Repeat("█", 20)+"]", ProgressBar("100.0%", 20))
	assert.Equal(t, "["+strings.Repeat(" ", 20)+"]", ProgressBar("0.0%", 20))
	assert.Equal(t, "["+strings.Repeat("█", 18)+strings.Repeat(" ", 2)+"]", ProgressBar("91.0%", 20))
	assert.Equal(t, "["+strings.Repeat(" ", 20)+"]", ProgressBar("garbage", 20), "unparseable strings render empty")
	assert.Equal(t, "["+strings.Repeat("█", 20)+"]", ProgressBar("140%", 20), "clamped at full")
}

func TestHistory_EmptyState(t *testing.T) {
	var buf bytes.Buffer
	History(&buf, nil)
	assert.Equal(t, "No attendance records found.\n", buf.String())
}

func TestShiftList_Empty(t *testing.T) {
	var buf bytes.Buffer
	ShiftList(&buf, nil, time.Now())
	assert.Equal(t, "No shifts recorded yet.\n", buf.String())
}
