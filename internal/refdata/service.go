package refdata

import (
	"context"
	"fmt"

	"fuelops/internal/api"
	"fuelops/internal/models"
)

// Service provides read-only access to the station's reference data:
// employees, tanks, pumps with nozzles, and fuel pricing. The shift and
// attendance workflows consume these, they never mutate them.
type Service struct {
	client *api.Client
}

// NewService creates a reference data service over the given API client
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Employees fetches all station employees
func (s *Service) Employees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.client.Get(ctx, "/api/employees", &employees); err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	return employees, nil
}

// Tanks fetches all fuel tanks with their current dip levels
func (s *Service) Tanks(ctx context.Context) ([]models.Tank, error) {
	var tanks []models.Tank
	if err := s.client.Get(ctx, "/api/tanks", &tanks); err != nil {
		return nil, fmt.Errorf("failed to fetch tanks: %w", err)
	}
	return tanks, nil
}

// Pumps fetches all pumps with their nozzles and current counter readings
func (s *Service) Pumps(ctx context.Context) ([]models.Pump, error) {
	var pumps []models.Pump
	if err := s.client.Get(ctx, "/api/pumps", &pumps); err != nil {
		return nil, fmt.Errorf("failed to fetch pumps: %w", err)
	}
	return pumps, nil
}

// FuelPrices fetches the station's current fuel pricing
func (s *Service) FuelPrices(ctx context.Context) ([]models.FuelPrice, error) {
	var prices []models.FuelPrice
	if err := s.client.Get(ctx, "/api/fuel-prices", &prices); err != nil {
		return nil, fmt.Errorf("failed to fetch fuel prices: %w", err)
	}
	return prices, nil
}
