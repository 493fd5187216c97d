package stationtest

import "fuelops/internal/models"

func strPtr(s string) *string { return &s }

// seed loads the fake station with a small demo data set: two users, four
// employees, two tanks, two pumps with two nozzles each, and pricing
func (s *Server) seed() {
	s.users["manager@station.test"] = seedUser{
		password: "fuel123",
		user:     models.User{ID: "U-1", Email: "manager@station.test", Name: "Asha Verma", Role: "manager"},
	}
	s.users["super@station.test"] = seedUser{
		password: "fuel123",
		user:     models.User{ID: "U-2", Email: "super@station.test", Name: "Ravi Kumar", Role: "supervisor"},
	}

	s.employees = []models.Employee{
		{ID: "E-1", Name: "Sunil Yadav", Role: "attendant", Phone: "9800000001"},
		{ID: "E-2", Name: "Meena Joshi", Role: "attendant", Phone: "9800000002"},
		{ID: "E-3", Name: "Imran Shaikh", Role: "attendant", Phone: "9800000003"},
		{ID: "E-4", Name: "Ravi Kumar", Role: "supervisor", Phone: "9800000004"},
	}

	s.tanks = []models.Tank{
		{ID: "T-1", Name: "Tank 1", FuelType: "petrol", Capacity: 20000, CurrentLevel: 14250.5, MinimumLevel: 2000},
		{ID: "T-2", Name: "Tank 2", FuelType: "diesel", Capacity: 30000, CurrentLevel: 21780, MinimumLevel: 3000},
	}

	s.pumps = []models.Pump{
		{ID: "P-1", Name: "Pump 1", Nozzles: []models.Nozzle{
			{ID: "N-1", FuelType: "petrol", CurrentReading: 532901.25, AssignedEmployee: strPtr("E-1")},
			{ID: "N-2", FuelType: "petrol", CurrentReading: 498113.4},
		}},
		{ID: "P-2", Name: "Pump 2", Nozzles: []models.Nozzle{
			{ID: "N-3", FuelType: "diesel", CurrentReading: 871240.0, AssignedEmployee: strPtr("E-2")},
			{ID: "N-4", FuelType: "diesel", CurrentReading: 640082.75},
		}},
	}

	s.prices = []models.FuelPrice{
		{FuelType: "petrol", PricePerLitre: 106.31, EffectiveFrom: 1767225600},
		{FuelType: "diesel", PricePerLitre: 94.27, EffectiveFrom: 1767225600},
	}
}

// SetShiftSales overrides a shift's server-computed sales aggregates.
// Tests use it to simulate tendering activity during an active shift.
func (s *Server) SetShiftSales(shiftID string, cash, card, upi float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shifts {
		if s.shifts[i].ID == shiftID {
			s.shifts[i].CashCollected = cash
			s.shifts[i].CardPayments = card
			s.shifts[i].UPIPayments = upi
			s.shifts[i].TotalSales = cash + card + upi
			return
		}
	}
}
