package stationtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"fuelops/internal/models"
	"fuelops/pkg/utils"

	"github.com/go-chi/chi/v5"
)

type markAttendanceRequest struct {
	ShiftID    string                  `json:"shiftId"`
	EmployeeID string                  `json:"employeeId"`
	Status     models.AttendanceStatus `json:"status"`
	Notes      string                  `json:"notes"`
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req markAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Status.IsMarkable() {
		utils.RespondError(w, http.StatusBadRequest, "Invalid attendance status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.employeeExists(req.EmployeeID) {
		utils.RespondError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if !s.shiftExists(req.ShiftID) {
		utils.RespondError(w, http.StatusNotFound, "Shift not found")
		return
	}

	now := time.Now().Unix()

	// Upsert: one record per (employee, shift), re-marking overwrites
	for i := range s.attendance {
		rec := &s.attendance[i]
		if rec.EmployeeID == req.EmployeeID && rec.ShiftID == req.ShiftID {
			rec.Status = req.Status
			rec.Notes = req.Notes
			rec.MarkedAt = &now
			utils.RespondData(w, *rec)
			return
		}
	}

	rec := models.AttendanceRecord{
		ID:         fmt.Sprintf("AR-%d", s.nextRecord),
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		Status:     req.Status,
		MarkedAt:   &now,
		Notes:      req.Notes,
	}
	s.nextRecord++
	s.attendance = append(s.attendance, rec)

	utils.RespondData(w, rec)
}

func (s *Server) handleEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.employeeExists(employeeID) {
		utils.RespondError(w, http.StatusNotFound, "Employee not found")
		return
	}

	var records []models.AttendanceRecord
	for _, rec := range s.attendance {
		if rec.EmployeeID == employeeID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		var a, b int64
		if records[i].MarkedAt != nil {
			a = *records[i].MarkedAt
		}
		if records[j].MarkedAt != nil {
			b = *records[j].MarkedAt
		}
		return a > b
	})

	respondList(w, records)
}

func (s *Server) handleShiftAttendance(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.shiftExists(shiftID) {
		utils.RespondError(w, http.StatusNotFound, "Shift not found")
		return
	}

	// One row per employee; employees without a record come back as the
	// derived not_marked placeholder
	rows := make([]models.ShiftAttendanceRow, 0, len(s.employees))
	for _, emp := range s.employees {
		row := models.ShiftAttendanceRow{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Status:       models.AttendanceNotMarked,
		}
		for _, rec := range s.attendance {
			if rec.EmployeeID == emp.ID && rec.ShiftID == shiftID {
				id := rec.ID
				row.RecordID = &id
				row.Status = rec.Status
				row.MarkedAt = rec.MarkedAt
				row.Notes = rec.Notes
				break
			}
		}
		rows = append(rows, row)
	}

	respondList(w, rows)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		utils.RespondError(w, http.StatusBadRequest, "Invalid month")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Shifts whose start falls inside the requested month
	var monthShifts []models.Shift
	for _, sh := range s.shifts {
		start := time.Unix(sh.StartTime, 0)
		if int(start.Month()) == month && start.Year() == year {
			monthShifts = append(monthShifts, sh)
		}
	}

	rows := make([]models.MonthlySummaryRow, 0, len(s.employees))
	for _, emp := range s.employees {
		row := models.MonthlySummaryRow{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			TotalDays:    len(monthShifts),
		}
		for _, sh := range monthShifts {
			for _, rec := range s.attendance {
				if rec.EmployeeID != emp.ID || rec.ShiftID != sh.ID {
					continue
				}
				switch rec.Status {
				case models.AttendancePresent, models.AttendanceLate:
					row.PresentDays++
				case models.AttendanceAbsent:
					row.AbsentDays++
				case models.AttendanceLeave:
					row.LeaveDays++
				}
			}
		}

		pct := 0.0
		if row.TotalDays > 0 {
			pct = float64(row.PresentDays) / float64(row.TotalDays) * 100
		}
		row.AttendancePercentage = fmt.Sprintf("%.1f%%", pct)
		rows = append(rows, row)
	}

	respondList(w, rows)
}

func (s *Server) handleDeleteAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	recordID := chi.URLParam(r, "recordID")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.attendance {
		if rec.ID == recordID && rec.EmployeeID == employeeID {
			s.attendance = append(s.attendance[:i], s.attendance[i+1:]...)
			utils.RespondData(w, nil)
			return
		}
	}
	utils.RespondError(w, http.StatusNotFound, "Attendance record not found")
}

func (s *Server) employeeExists(id string) bool {
	for _, emp := range s.employees {
		if emp.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) shiftExists(id string) bool {
	for _, sh := range s.shifts {
		if sh.ID == id {
			return true
		}
	}
	return false
}
