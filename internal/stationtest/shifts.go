package stationtest

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"fuelops/internal/models"
	"fuelops/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// cashTolerance is the variance beyond which the fake flags a discrepancy
const cashTolerance = 100.0

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	OK    bool         `json:"ok"`
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, loginResponse{OK: false})
		return
	}

	s.mu.Lock()
	seeded, found := s.users[req.Email]
	s.mu.Unlock()

	if !found || seeded.password != req.Password {
		utils.RespondJSON(w, http.StatusUnauthorized, loginResponse{OK: false})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": seeded.user.ID,
		"email":   seeded.user.Email,
		"role":    seeded.user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		utils.RespondJSON(w, http.StatusInternalServerError, loginResponse{OK: false})
		return
	}

	user := seeded.user
	utils.RespondJSON(w, http.StatusOK, loginResponse{OK: true, Token: tokenString, User: &user})
}

func (s *Server) handleListShifts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	shifts := make([]models.Shift, len(s.shifts))
	copy(shifts, s.shifts)
	s.mu.Unlock()

	respondList(w, shifts)
}

type createShiftRequest struct {
	OpeningCash       float64                `json:"openingCash"`
	StartTime         int64                  `json:"startTime"`
	AssignedEmployees []models.ShiftEmployee `json:"assignedEmployees"`
	SupervisorID      *string                `json:"supervisorId"`
}

func (s *Server) handleCreateShift(w http.ResponseWriter, r *http.Request) {
	var req createShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OpeningCash < 0 {
		utils.RespondError(w, http.StatusBadRequest, "Opening cash cannot be negative")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.shifts {
		if s.shifts[i].IsActive() {
			utils.RespondError(w, http.StatusConflict, "A shift is already active. Close it before starting a new one.")
			return
		}
	}

	now := time.Now().Unix()
	shift := models.Shift{
		ID:                uuid.NewString(),
		ShiftNumber:       s.nextShift,
		Status:            models.ShiftStatusActive,
		StartTime:         req.StartTime,
		OpeningCash:       req.OpeningCash,
		AssignedEmployees: req.AssignedEmployees,
		SupervisorID:      req.SupervisorID,
		StartedBy:         userFrom(r).ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.nextShift++
	s.shifts = append(s.shifts, shift)

	utils.RespondData(w, shift)
}

func (s *Server) handleShiftSummary(w http.ResponseWriter, r *http.Request) {
	if s.FailSummary {
		utils.RespondError(w, http.StatusInternalServerError, "Summary service unavailable")
		return
	}

	shiftID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.shifts {
		if s.shifts[i].ID == shiftID {
			utils.RespondData(w, models.ShiftSummary{
				ShiftID:              shiftID,
				SuggestedClosingCash: s.shifts[i].OpeningCash + s.shifts[i].CashCollected,
				CashCollected:        s.shifts[i].CashCollected,
				TotalSales:           s.shifts[i].TotalSales,
			})
			return
		}
	}
	utils.RespondError(w, http.StatusNotFound, "Shift not found")
}

type closeShiftRequest struct {
	ClosingCash  float64              `json:"closingCash"`
	EndTime      int64                `json:"endTime"`
	TankReadings []models.TankReading `json:"tankReadings"`
	PumpReadings []models.PumpReading `json:"pumpReadings"`
}

func (s *Server) handleCloseShift(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "id")

	var req closeShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var shift *models.Shift
	for i := range s.shifts {
		if s.shifts[i].ID == shiftID {
			shift = &s.shifts[i]
			break
		}
	}
	if shift == nil {
		utils.RespondError(w, http.StatusNotFound, "Shift not found")
		return
	}
	if !shift.IsActive() {
		utils.RespondError(w, http.StatusBadRequest, "Shift is not active")
		return
	}
	if len(req.TankReadings) < len(s.tanks) {
		utils.RespondError(w, http.StatusBadRequest, "A closing reading is required for every tank")
		return
	}
	nozzleCount := 0
	for i := range s.pumps {
		nozzleCount += len(s.pumps[i].Nozzles)
	}
	if len(req.PumpReadings) < nozzleCount {
		utils.RespondError(w, http.StatusBadRequest, "A closing reading is required for every nozzle")
		return
	}

	now := time.Now().Unix()
	shift.Status = models.ShiftStatusClosed
	shift.EndTime = &req.EndTime
	shift.ClosingCash = &req.ClosingCash
	shift.TankReadings = req.TankReadings
	shift.PumpReadings = req.PumpReadings
	shift.UpdatedAt = now

	// Cash variance beyond tolerance becomes a discrepancy
	variance := req.ClosingCash - shift.OpeningCash - shift.CashCollected
	if math.Abs(variance) > cashTolerance {
		reason := "Excess cash at close"
		if variance < 0 {
			reason = "Cash short at close"
		}
		shift.Discrepancies = append(shift.Discrepancies, models.Discrepancy{
			Reason: reason,
			Amount: variance,
		})
	}

	// Reading anomalies: a counter or dip that ran backwards
	for _, tr := range req.TankReadings {
		if tr.ClosingReading > tr.OpeningReading {
			shift.Discrepancies = append(shift.Discrepancies, models.Discrepancy{
				Reason: fmt.Sprintf("Tank %s closed above its opening dip", tr.TankID),
				Amount: tr.ClosingReading - tr.OpeningReading,
			})
		}
	}
	for _, pr := range req.PumpReadings {
		if pr.ClosingReading < pr.OpeningReading {
			shift.Discrepancies = append(shift.Discrepancies, models.Discrepancy{
				Reason: fmt.Sprintf("Nozzle %s counter ran backwards", pr.NozzleID),
				Amount: pr.OpeningReading - pr.ClosingReading,
			})
		}
	}

	// Carry the submitted readings into the reference data
	for _, tr := range req.TankReadings {
		for i := range s.tanks {
			if s.tanks[i].ID == tr.TankID {
				s.tanks[i].CurrentLevel = tr.ClosingReading
			}
		}
	}
	for _, pr := range req.PumpReadings {
		for i := range s.pumps {
			for j := range s.pumps[i].Nozzles {
				if s.pumps[i].Nozzles[j].ID == pr.NozzleID {
					s.pumps[i].Nozzles[j].CurrentReading = pr.ClosingReading
				}
			}
		}
	}

	utils.RespondData(w, *shift)
}
