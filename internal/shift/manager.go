package shift

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fuelops/internal/api"
	"fuelops/internal/models"
	"fuelops/internal/refdata"
)

var (
	// ErrShiftActive rejects starting a shift while one is already open
	ErrShiftActive = errors.New("a shift is already active - close it before starting a new one")

	// ErrNoActiveShift rejects operations that need an open shift
	ErrNoActiveShift = errors.New("no active shift")

	// ErrIncompleteReadings rejects a close submission that is missing a
	// tank or nozzle row snapshotted at prepare time
	ErrIncompleteReadings = errors.New("incomplete closing readings")
)

// Manager owns the client-side shift state: the fetched shift list and the
// derived active shift. All mutations go through the server; after every
// write the list is re-fetched rather than patched locally, so the
// server-computed fields (aggregates, discrepancies) are never recomputed
// here, only displayed.
type Manager struct {
	client  *api.Client
	refdata *refdata.Service
	shifts  []models.Shift
}

// StartShiftInput is the payload for opening a new shift
type StartShiftInput struct {
	OpeningCash       float64                `json:"openingCash"`
	StartTime         time.Time              `json:"-"`
	AssignedEmployees []models.ShiftEmployee `json:"assignedEmployees"`
	SupervisorID      *string                `json:"supervisorId,omitempty"`
}

type startShiftPayload struct {
	StartShiftInput
	StartTime int64 `json:"startTime"`
}

// CloseForm is the editable close submission seed produced by
// PrepareClose: one row per tank and per nozzle, with the current level or
// counter snapshotted as both opening and default closing value.
type CloseForm struct {
	ShiftID              string
	SuggestedClosingCash float64
	Degraded             bool // summary fetch failed, suggestion defaulted to zero
	TankReadings         []models.TankReading
	PumpReadings         []models.PumpReading
}

// CloseShiftInput is the payload for closing the active shift
type CloseShiftInput struct {
	ClosingCash  float64              `json:"closingCash"`
	EndTime      time.Time            `json:"-"`
	TankReadings []models.TankReading `json:"tankReadings"`
	PumpReadings []models.PumpReading `json:"pumpReadings"`
}

type closeShiftPayload struct {
	CloseShiftInput
	EndTime int64 `json:"endTime"`
}

// NewManager creates a shift lifecycle manager
func NewManager(client *api.Client, ref *refdata.Service) *Manager {
	return &Manager{client: client, refdata: ref}
}

// Refresh re-fetches the full shift list from the server
func (m *Manager) Refresh(ctx context.Context) error {
	var shifts []models.Shift
	if err := m.client.Get(ctx, "/api/shifts", &shifts); err != nil {
		return fmt.Errorf("failed to fetch shifts: %w", err)
	}
	m.shifts = shifts
	return nil
}

// Shifts returns the last fetched shift list
func (m *Manager) Shifts() []models.Shift {
	return m.shifts
}

// ActiveShift returns the single active shift, or nil. This is the one
// derived accessor for the at-most-one-active invariant; every consumer
// goes through it instead of scanning the list itself.
func (m *Manager) ActiveShift() *models.Shift {
	for i := range m.shifts {
		if m.shifts[i].IsActive() {
			return &m.shifts[i]
		}
	}
	return nil
}

// Start opens a new shift. The client gate rejects it while a shift is
// active in local state; the server is the authority and rejects racing
// starts too, in which case its message is surfaced as-is.
func (m *Manager) Start(ctx context.Context, in StartShiftInput) (*models.Shift, error) {
	if in.OpeningCash < 0 {
		return nil, errors.New("opening cash cannot be negative")
	}
	if active := m.ActiveShift(); active != nil {
		log.Printf("❌ Start rejected: shift %s is still active", active.ID)
		return nil, ErrShiftActive
	}

	payload := startShiftPayload{StartShiftInput: in, StartTime: in.StartTime.Unix()}

	var created models.Shift
	if err := m.client.Post(ctx, "/api/shifts", payload, &created); err != nil {
		return nil, err
	}

	log.Printf("✅ Shift started: SH-%03d (%s)", created.ShiftNumber, created.ID)

	if err := m.Refresh(ctx); err != nil {
		log.Printf("⚠️  Shift created but list refresh failed: %v", err)
	}
	return &created, nil
}

// PrepareClose builds the close-form seed for the active shift: the
// server-suggested closing cash plus a snapshot of every tank level and
// nozzle counter. The summary fetch is best effort - if it fails the form
// falls back to a zero suggestion, flags itself degraded, and the close
// workflow stays usable.
func (m *Manager) PrepareClose(ctx context.Context) (*CloseForm, error) {
	active := m.ActiveShift()
	if active == nil {
		return nil, ErrNoActiveShift
	}

	form := &CloseForm{ShiftID: active.ID}

	var summary models.ShiftSummary
	if err := m.client.Get(ctx, "/api/shifts/"+active.ID+"/summary", &summary); err != nil {
		log.Printf("⚠️  Shift summary unavailable, defaulting suggested cash to 0: %v", err)
		form.Degraded = true
	} else {
		form.SuggestedClosingCash = summary.SuggestedClosingCash
	}

	tanks, err := m.refdata.Tanks(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tanks {
		form.TankReadings = append(form.TankReadings, models.TankReading{
			TankID:         t.ID,
			TankName:       t.Name,
			FuelType:       t.FuelType,
			OpeningReading: t.CurrentLevel,
			ClosingReading: t.CurrentLevel,
		})
	}

	pumps, err := m.refdata.Pumps(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range pumps {
		for _, n := range p.Nozzles {
			form.PumpReadings = append(form.PumpReadings, models.PumpReading{
				PumpID:         p.ID,
				NozzleID:       n.ID,
				FuelType:       n.FuelType,
				OpeningReading: n.CurrentReading,
				ClosingReading: n.CurrentReading,
			})
		}
	}

	return form, nil
}

// Close submits the close for the active shift. The submission must carry
// exactly one reading row for every tank and nozzle the form snapshotted;
// anything missing, duplicated or unknown is rejected before any request
// is sent. Whether closing readings may run below opening readings is the
// server's call - no client-side ordering check is applied.
func (m *Manager) Close(ctx context.Context, form *CloseForm, in CloseShiftInput) error {
	active := m.ActiveShift()
	if active == nil {
		return ErrNoActiveShift
	}
	if form == nil || form.ShiftID != active.ID {
		return fmt.Errorf("close form does not match the active shift")
	}

	if err := validateReadings(form, in); err != nil {
		return err
	}

	payload := closeShiftPayload{CloseShiftInput: in, EndTime: in.EndTime.Unix()}
	if err := m.client.Post(ctx, "/api/shifts/"+active.ID+"/close", payload, nil); err != nil {
		return err
	}

	log.Printf("✅ Shift closed: SH-%03d (%s)", active.ShiftNumber, active.ID)

	if err := m.Refresh(ctx); err != nil {
		log.Printf("⚠️  Shift closed but list refresh failed: %v", err)
	}
	return nil
}

// validateReadings checks the submission against the prepare-time
// snapshot: exactly one row per tank, exactly one row per nozzle
func validateReadings(form *CloseForm, in CloseShiftInput) error {
	tankSeen := make(map[string]int, len(in.TankReadings))
	for _, r := range in.TankReadings {
		tankSeen[r.TankID]++
	}
	if len(tankSeen) != len(in.TankReadings) {
		return fmt.Errorf("%w: duplicate tank reading rows", ErrIncompleteReadings)
	}
	for _, snap := range form.TankReadings {
		if tankSeen[snap.TankID] == 0 {
			return fmt.Errorf("%w: missing closing reading for tank %s", ErrIncompleteReadings, snap.TankName)
		}
		delete(tankSeen, snap.TankID)
	}
	if len(tankSeen) > 0 {
		return fmt.Errorf("%w: reading rows for unknown tanks", ErrIncompleteReadings)
	}

	nozzleKey := func(pumpID, nozzleID string) string { return pumpID + "/" + nozzleID }
	nozzleSeen := make(map[string]int, len(in.PumpReadings))
	for _, r := range in.PumpReadings {
		nozzleSeen[nozzleKey(r.PumpID, r.NozzleID)]++
	}
	if len(nozzleSeen) != len(in.PumpReadings) {
		return fmt.Errorf("%w: duplicate nozzle reading rows", ErrIncompleteReadings)
	}
	for _, snap := range form.PumpReadings {
		key := nozzleKey(snap.PumpID, snap.NozzleID)
		if nozzleSeen[key] == 0 {
			return fmt.Errorf("%w: missing closing reading for nozzle %s", ErrIncompleteReadings, key)
		}
		delete(nozzleSeen, key)
	}
	if len(nozzleSeen) > 0 {
		return fmt.Errorf("%w: reading rows for unknown nozzles", ErrIncompleteReadings)
	}

	return nil
}
