package models

// Employee is a station staff member
type Employee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"` // "attendant", "supervisor" or "manager"
	Phone string `json:"phone,omitempty"`
}

// Tank is a fuel storage tank. CurrentLevel is the latest dip reading.
type Tank struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	FuelType     string  `json:"fuelType"`
	Capacity     float64 `json:"capacity"`
	CurrentLevel float64 `json:"currentLevel"`
	MinimumLevel float64 `json:"minimumLevel"`
}

// IsLow returns true when the tank has dropped to its reorder level
func (t *Tank) IsLow() bool {
	return t.CurrentLevel <= t.MinimumLevel
}

// FillPercentage returns fill as 0.0-1.0
func (t *Tank) FillPercentage() float64 {
	if t.Capacity == 0 {
		return 0.0
	}
	return t.CurrentLevel / t.Capacity
}

// Nozzle is one dispensing point on a pump. CurrentReading is the
// cumulative litres counter used for shift boundary readings.
type Nozzle struct {
	ID               string  `json:"id"`
	FuelType         string  `json:"fuelType"`
	CurrentReading   float64 `json:"currentReading"`
	AssignedEmployee *string `json:"assignedEmployee"`
}

// Pump is a dispenser unit with one or more nozzles
type Pump struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Nozzles []Nozzle `json:"nozzles"`
}

// FuelPrice is the station's current price for one fuel type
type FuelPrice struct {
	FuelType      string  `json:"fuelType"`
	PricePerLitre float64 `json:"pricePerLitre"`
	EffectiveFrom int64   `json:"effectiveFrom"`
}
