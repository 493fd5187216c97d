package attendance

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"fuelops/internal/api"
	"fuelops/internal/models"
	"fuelops/internal/refdata"
	"fuelops/internal/session"
	"fuelops/internal/shift"
	"fuelops/internal/stationtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	station  *stationtest.Server
	manager  *shift.Manager
	recorder *Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	station := stationtest.New()
	ts := httptest.NewServer(station.Handler())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL)
	store := session.NewStore(client, "")
	_, err := store.Login(context.Background(), "manager@station.test", "fuel123")
	require.NoError(t, err)

	manager := shift.NewManager(client, refdata.NewService(client))
	require.NoError(t, manager.Refresh(context.Background()))

	return &fixture{
		station:  station,
		manager:  manager,
		recorder: NewRecorder(client, manager),
	}
}

func (f *fixture) startShift(t *testing.T) *models.Shift {
	t.Helper()
	created, err := f.manager.Start(context.Background(), shift.StartShiftInput{
		OpeningCash: 1000,
		StartTime:   time.Now(),
	})
	require.NoError(t, err)
	return created
}

func (f *fixture) closeShift(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	form, err := f.manager.PrepareClose(ctx)
	require.NoError(t, err)
	require.NoError(t, f.manager.Close(ctx, form, shift.CloseShiftInput{
		ClosingCash:  1000,
		EndTime:      time.Now(),
		TankReadings: form.TankReadings,
		PumpReadings: form.PumpReadings,
	}))
}

func TestQuickMark_NoActiveShiftSendsNothing(t *testing.T) {
	f := newFixture(t)

	before := f.station.RequestCount()
	err := f.recorder.QuickMark(context.Background(), "E-1", models.AttendancePresent)
	assert.ErrorIs(t, err, ErrNoActiveShift)
	assert.Equal(t, before, f.station.RequestCount(), "precondition failures issue zero requests")
}

func TestQuickMark_RecordsNoteAndShift(t *testing.T) {
	f := newFixture(t)
	active := f.startShift(t)

	require.NoError(t, f.recorder.QuickMark(context.Background(), "E-1", models.AttendancePresent))

	history, err := f.recorder.History(context.Background(), "E-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, active.ID, history[0].ShiftID)
	assert.Equal(t, models.AttendancePresent, history[0].Status)
	assert.Equal(t, "Quick marked as present", history[0].Notes)
	require.NotNil(t, history[0].MarkedAt)
}

func TestMark_RequiresEmployee(t *testing.T) {
	f := newFixture(t)
	f.startShift(t)

	before := f.station.RequestCount()
	err := f.recorder.Mark(context.Background(), MarkInput{Status: models.AttendanceLeave})
	assert.ErrorIs(t, err, ErrEmployeeRequired)
	assert.Equal(t, before, f.station.RequestCount())
}

func TestMark_RejectsUnmarkableStatus(t *testing.T) {
	f := newFixture(t)
	f.startShift(t)

	before := f.station.RequestCount()
	err := f.recorder.Mark(context.Background(), MarkInput{EmployeeID: "E-1", Status: models.AttendanceNotMarked})
	assert.Error(t, err)
	assert.Equal(t, before, f.station.RequestCount())
}

func TestMark_RemarkOverwrites(t *testing.T) {
	f := newFixture(t)
	f.startShift(t)
	ctx := context.Background()

	require.NoError(t, f.recorder.Mark(ctx, MarkInput{EmployeeID: "E-1", Status: models.AttendancePresent}))
	require.NoError(t, f.recorder.Mark(ctx, MarkInput{EmployeeID: "E-1", Status: models.AttendanceAbsent, Notes: "left sick"}))

	history, err := f.recorder.History(ctx, "E-1")
	require.NoError(t, err)
	require.Len(t, history, 1, "upsert keeps one record per employee per shift")
	assert.Equal(t, models.AttendanceAbsent, history[0].Status)
	assert.Equal(t, "left sick", history[0].Notes)
}

func TestShiftAttendance_NotMarkedPlaceholders(t *testing.T) {
	f := newFixture(t)
	active := f.startShift(t)
	ctx := context.Background()

	require.NoError(t, f.recorder.QuickMark(ctx, "E-1", models.AttendanceLate))

	rows, err := f.recorder.ShiftAttendance(ctx, active.ID)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	marked := 0
	for _, row := range rows {
		if row.EmployeeID == "E-1" {
			assert.Equal(t, models.AttendanceLate, row.Status)
			assert.NotNil(t, row.RecordID)
			marked++
			continue
		}
		assert.Equal(t, models.AttendanceNotMarked, row.Status)
		assert.Nil(t, row.RecordID)
		assert.Nil(t, row.MarkedAt)
	}
	assert.Equal(t, 1, marked)
}

func TestDelete_TargetsOnlyActiveShiftRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.startShift(t)
	require.NoError(t, f.recorder.QuickMark(ctx, "E-1", models.AttendancePresent))
	f.closeShift(t)

	second := f.startShift(t)
	require.NoError(t, f.recorder.QuickMark(ctx, "E-1", models.AttendanceLate))

	require.NoError(t, f.recorder.Delete(ctx, "E-1"))

	history, err := f.recorder.History(ctx, "E-1")
	require.NoError(t, err)
	require.Len(t, history, 1, "only the active shift's record is deleted")
	assert.Equal(t, first.ID, history[0].ShiftID)
	assert.NotEqual(t, second.ID, history[0].ShiftID)
}

func TestDelete_AbortsWhenRecordUnresolved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.startShift(t)
	require.NoError(t, f.recorder.QuickMark(ctx, "E-1", models.AttendancePresent))
	f.closeShift(t)
	f.startShift(t)

	// E-1 has history, but none of it belongs to the new active shift
	err := f.recorder.Delete(ctx, "E-1")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	history, err := f.recorder.History(ctx, "E-1")
	require.NoError(t, err)
	require.Len(t, history, 1, "resolution failure must not delete anything")
	assert.Equal(t, first.ID, history[0].ShiftID)
}

func TestDelete_NoActiveShiftSendsNothing(t *testing.T) {
	f := newFixture(t)

	before := f.station.RequestCount()
	err := f.recorder.Delete(context.Background(), "E-1")
	assert.ErrorIs(t, err, ErrNoActiveShift)
	assert.Equal(t, before, f.station.RequestCount())
}

func TestHistory_EmptyIsNotAnError(t *testing.T) {
	f := newFixture(t)

	history, err := f.recorder.History(context.Background(), "E-3")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMonthlySummary_PercentagePassedThrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.startShift(t)
	require.NoError(t, f.recorder.QuickMark(ctx, "E-1", models.AttendancePresent))
	require.NoError(t, f.recorder.QuickMark(ctx, "E-2", models.AttendanceAbsent))

	now := time.Now()
	rows, err := f.recorder.MonthlySummary(ctx, now.Month(), now.Year())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byID := map[string]models.MonthlySummaryRow{}
	for _, row := range rows {
		byID[row.EmployeeID] = row
	}

	assert.Equal(t, "100.0%", byID["E-1"].AttendancePercentage)
	assert.Equal(t, 1, byID["E-1"].PresentDays)
	assert.Equal(t, "0.0%", byID["E-2"].AttendancePercentage)
	assert.Equal(t, 1, byID["E-2"].AbsentDays)
	assert.Equal(t, 1, byID["E-2"].TotalDays)
}
