package models

// AttendanceStatus represents the marked state of an employee for a shift
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceLeave     AttendanceStatus = "leave"
	AttendanceLate      AttendanceStatus = "late"
	AttendanceNotMarked AttendanceStatus = "not_marked" // Derived default, never persisted
)

// MarkableStatuses are the statuses a user can actually set.
// not_marked only exists as the placeholder for employees with no record yet.
var MarkableStatuses = []AttendanceStatus{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceLeave,
	AttendanceLate,
}

// IsMarkable returns true if the status can be written, as opposed to the
// derived not_marked placeholder
func (s AttendanceStatus) IsMarkable() bool {
	for _, m := range MarkableStatuses {
		if s == m {
			return true
		}
	}
	return false
}

// AttendanceRecord is one employee's attendance for one shift.
// At most one record exists per (employee, shift) pair; marking again
// overwrites via server-side upsert.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employeeId"`
	ShiftID    string           `json:"shiftId"`
	Status     AttendanceStatus `json:"status"`
	MarkedAt   *int64           `json:"markedAt"`
	Notes      string           `json:"notes,omitempty"`
}

// ShiftAttendanceRow is one row of the per-shift attendance view. Employees
// without a record come back with status not_marked and no record id.
type ShiftAttendanceRow struct {
	EmployeeID   string           `json:"employeeId"`
	EmployeeName string           `json:"employeeName"`
	RecordID     *string          `json:"recordId"`
	Status       AttendanceStatus `json:"status"`
	MarkedAt     *int64           `json:"markedAt"`
	Notes        string           `json:"notes,omitempty"`
}

// MonthlySummaryRow is one employee's aggregate for a month.
// AttendancePercentage is a server-formatted string (e.g. "82.5%") and is
// displayed verbatim; the client never recomputes it from the day counts.
type MonthlySummaryRow struct {
	EmployeeID           string `json:"employeeId"`
	EmployeeName         string `json:"employeeName"`
	TotalDays            int    `json:"totalDays"`
	PresentDays          int    `json:"presentDays"`
	AbsentDays           int    `json:"absentDays"`
	LeaveDays            int    `json:"leaveDays"`
	AttendancePercentage string `json:"attendancePercentage"`
}
