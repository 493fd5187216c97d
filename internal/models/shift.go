package models

// ShiftStatus represents the current status of a shift
type ShiftStatus string

const (
	ShiftStatusActive     ShiftStatus = "active"     // Shift in progress
	ShiftStatusClosed     ShiftStatus = "closed"     // Closed with readings submitted
	ShiftStatusReconciled ShiftStatus = "reconciled" // Back-office reconciliation done (server-side)
)

// TankReading is a dip-reading snapshot for one tank at a shift boundary
type TankReading struct {
	TankID         string  `json:"tankId"`
	TankName       string  `json:"tankName"`
	FuelType       string  `json:"fuelType"`
	OpeningReading float64 `json:"openingReading"`
	ClosingReading float64 `json:"closingReading"`
}

// PumpReading is the cumulative dispensed-volume counter for one nozzle
type PumpReading struct {
	PumpID         string  `json:"pumpId"`
	NozzleID       string  `json:"nozzleId"`
	FuelType       string  `json:"fuelType"`
	OpeningReading float64 `json:"openingReading"`
	ClosingReading float64 `json:"closingReading"`
}

// Discrepancy is a server-computed mismatch found during close
type Discrepancy struct {
	Reason string  `json:"reason"`
	Amount float64 `json:"amount"`
}

// ShiftEmployee assigns an employee to a pump for the duration of a shift
type ShiftEmployee struct {
	EmployeeID string `json:"employeeId"`
	PumpID     string `json:"pumpId,omitempty"`
}

// Shift represents one bounded operating period of the station
type Shift struct {
	ID                string          `json:"id"`
	ShiftNumber       int             `json:"shiftNumber"`
	Status            ShiftStatus     `json:"status"`
	StartTime         int64           `json:"startTime"`
	EndTime           *int64          `json:"endTime"`
	OpeningCash       float64         `json:"openingCash"`
	ClosingCash       *float64        `json:"closingCash"`
	AssignedEmployees []ShiftEmployee `json:"assignedEmployees"`
	SupervisorID      *string         `json:"supervisorId"`
	StartedBy         string          `json:"startedBy,omitempty"`
	TotalSales        float64         `json:"totalSales"`
	CashCollected     float64         `json:"cashCollected"`
	CardPayments      float64         `json:"cardPayments"`
	UPIPayments       float64         `json:"upiPayments"`
	TankReadings      []TankReading   `json:"tankReadings"`
	PumpReadings      []PumpReading   `json:"pumpReadings"`
	Discrepancies     []Discrepancy   `json:"discrepancies"`
	CreatedAt         int64           `json:"createdAt"`
	UpdatedAt         int64           `json:"updatedAt"`
}

// IsActive returns true while the shift is the station's open shift
func (s *Shift) IsActive() bool {
	return s.Status == ShiftStatusActive
}

// ShiftSummary is the server-computed close suggestion for a shift
type ShiftSummary struct {
	ShiftID              string  `json:"shiftId"`
	SuggestedClosingCash float64 `json:"suggestedClosingCash"`
	CashCollected        float64 `json:"cashCollected"`
	TotalSales           float64 `json:"totalSales"`
}
