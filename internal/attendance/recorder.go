package attendance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fuelops/internal/api"
	"fuelops/internal/models"
)

var (
	// ErrNoActiveShift rejects marking before any network call when no
	// shift is open to attribute the attendance to
	ErrNoActiveShift = errors.New("no active shift - start a shift before marking attendance")

	// ErrEmployeeRequired rejects a form submission without an employee
	ErrEmployeeRequired = errors.New("employee is required")

	// ErrRecordNotFound aborts a delete whose record could not be
	// resolved against the active shift
	ErrRecordNotFound = errors.New("no attendance record found for this employee in the active shift")
)

// ActiveShiftSource yields the current active shift, or nil. Satisfied by
// shift.Manager.
type ActiveShiftSource interface {
	ActiveShift() *models.Shift
}

// Recorder marks, queries and deletes per-employee, per-shift attendance.
// Upsert semantics live on the server: re-marking an employee for the same
// shift overwrites the existing record instead of adding one.
type Recorder struct {
	client *api.Client
	shifts ActiveShiftSource
}

// MarkInput is the detailed attendance form payload
type MarkInput struct {
	EmployeeID string
	Status     models.AttendanceStatus
	Notes      string
}

type markPayload struct {
	ShiftID    string                  `json:"shiftId"`
	EmployeeID string                  `json:"employeeId"`
	Status     models.AttendanceStatus `json:"status"`
	Notes      string                  `json:"notes,omitempty"`
}

// NewRecorder creates an attendance recorder bound to the shift state
func NewRecorder(client *api.Client, shifts ActiveShiftSource) *Recorder {
	return &Recorder{client: client, shifts: shifts}
}

// QuickMark marks an employee with a single action, no confirmation step.
// The notes field records that the status was quick-marked.
func (r *Recorder) QuickMark(ctx context.Context, employeeID string, status models.AttendanceStatus) error {
	return r.mark(ctx, MarkInput{
		EmployeeID: employeeID,
		Status:     status,
		Notes:      fmt.Sprintf("Quick marked as %s", status),
	})
}

// Mark marks an employee via the detailed form
func (r *Recorder) Mark(ctx context.Context, in MarkInput) error {
	return r.mark(ctx, in)
}

func (r *Recorder) mark(ctx context.Context, in MarkInput) error {
	if in.EmployeeID == "" {
		return ErrEmployeeRequired
	}
	if !in.Status.IsMarkable() {
		return fmt.Errorf("invalid attendance status %q", in.Status)
	}

	active := r.shifts.ActiveShift()
	if active == nil {
		return ErrNoActiveShift
	}

	payload := markPayload{
		ShiftID:    active.ID,
		EmployeeID: in.EmployeeID,
		Status:     in.Status,
		Notes:      in.Notes,
	}
	if err := r.client.Post(ctx, "/api/attendance", payload, nil); err != nil {
		return err
	}

	log.Printf("✅ Attendance marked: %s → %s (shift %s)", in.EmployeeID, in.Status, active.ID)
	return nil
}

// Delete removes an employee's attendance record for the active shift.
// The record id is resolved by re-fetching the employee's history and
// locating the entry for the active shift; if none matches, the flow
// aborts before any delete call.
func (r *Recorder) Delete(ctx context.Context, employeeID string) error {
	if employeeID == "" {
		return ErrEmployeeRequired
	}

	active := r.shifts.ActiveShift()
	if active == nil {
		return ErrNoActiveShift
	}

	history, err := r.History(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to resolve attendance record: %w", err)
	}

	var recordID string
	for _, rec := range history {
		if rec.ShiftID == active.ID {
			recordID = rec.ID
			break
		}
	}
	if recordID == "" {
		return ErrRecordNotFound
	}

	if err := r.client.Delete(ctx, "/api/attendance/"+employeeID+"/"+recordID); err != nil {
		return err
	}

	log.Printf("✅ Attendance record deleted: %s (employee %s)", recordID, employeeID)
	return nil
}

// History fetches an employee's attendance records, newest first. An empty
// result is a valid no-records state, not an error.
func (r *Recorder) History(ctx context.Context, employeeID string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := r.client.Get(ctx, "/api/attendance/employee/"+employeeID, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ShiftAttendance fetches the per-employee rows for one shift, including
// not_marked placeholders for employees with no record yet
func (r *Recorder) ShiftAttendance(ctx context.Context, shiftID string) ([]models.ShiftAttendanceRow, error) {
	var rows []models.ShiftAttendanceRow
	if err := r.client.Get(ctx, "/api/attendance/shift/"+shiftID, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlySummary fetches per-employee aggregates for a month. The
// percentage comes back as a server-formatted string and is passed through
// untouched.
func (r *Recorder) MonthlySummary(ctx context.Context, month time.Month, year int) ([]models.MonthlySummaryRow, error) {
	var rows []models.MonthlySummaryRow
	path := fmt.Sprintf("/api/attendance/summary?month=%d&year=%d", int(month), year)
	if err := r.client.Get(ctx, path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
