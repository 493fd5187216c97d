package refdata

import (
	"context"
	"net/http/httptest"
	"testing"

	"fuelops/internal/api"
	"fuelops/internal/models"
	"fuelops/internal/session"
	"fuelops/internal/stationtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	station := stationtest.New()
	ts := httptest.NewServer(station.Handler())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL)
	store := session.NewStore(client, "")
	_, err := store.Login(context.Background(), "manager@station.test", "fuel123")
	require.NoError(t, err)

	return NewService(client)
}

func TestEmployees(t *testing.T) {
	svc := newTestService(t)

	employees, err := svc.Employees(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 4)
	assert.Equal(t, "E-1", employees[0].ID)
	assert.Equal(t, "attendant", employees[0].Role)
}

func TestTanks(t *testing.T) {
	svc := newTestService(t)

	tanks, err := svc.Tanks(context.Background())
	require.NoError(t, err)
	require.Len(t, tanks, 2)
	assert.Equal(t, "petrol", tanks[0].FuelType)
	assert.Equal(t, 14250.5, tanks[0].CurrentLevel)
}

func TestPumpsAndNozzles(t *testing.T) {
	svc := newTestService(t)

	pumps, err := svc.Pumps(context.Background())
	require.NoError(t, err)
	require.Len(t, pumps, 2)
	require.Len(t, pumps[0].Nozzles, 2)
	assert.Equal(t, "N-1", pumps[0].Nozzles[0].ID)
	assert.Equal(t, 532901.25, pumps[0].Nozzles[0].CurrentReading)
	require.NotNil(t, pumps[0].Nozzles[0].AssignedEmployee)
	assert.Equal(t, "E-1", *pumps[0].Nozzles[0].AssignedEmployee)
	assert.Nil(t, pumps[0].Nozzles[1].AssignedEmployee)
}

func TestFuelPrices(t *testing.T) {
	svc := newTestService(t)

	prices, err := svc.FuelPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, 106.31, prices[0].PricePerLitre)
}

func TestTankHelpers(t *testing.T) {
	low := models.Tank{Capacity: 20000, CurrentLevel: 1500, MinimumLevel: 2000}
	assert.True(t, low.IsLow())
	assert.Equal(t, 0.075, low.FillPercentage())

	empty := models.Tank{}
	assert.Equal(t, 0.0, empty.FillPercentage())
}
