package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fuelops/internal/models"
	"fuelops/internal/render"
	"fuelops/internal/shift"

	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Manage the station's shift lifecycle",
}

var shiftStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if err := a.shifts.Refresh(cmd.Context()); err != nil {
			return err
		}

		active := a.shifts.ActiveShift()
		if active == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No active shift.")
			return nil
		}
		render.ShiftDetails(cmd.OutOrStdout(), active, time.Now())
		return nil
	},
}

var shiftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all shifts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if err := a.shifts.Refresh(cmd.Context()); err != nil {
			return err
		}
		render.ShiftList(cmd.OutOrStdout(), a.shifts.Shifts(), time.Now())
		return nil
	},
}

var (
	startOpeningCash float64
	startEmployees   []string
	startSupervisor  string
)

var shiftStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Open a new shift",
	Long:  "Open a new shift with an opening cash float and pump assignments.\nEmployees are given as EMPLOYEE or EMPLOYEE:PUMP, e.g. --employee E-1:P-1.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if err := a.shifts.Refresh(cmd.Context()); err != nil {
			return err
		}

		in := shift.StartShiftInput{
			OpeningCash: startOpeningCash,
			StartTime:   time.Now(),
		}
		for _, spec := range startEmployees {
			employeeID, pumpID, _ := strings.Cut(spec, ":")
			in.AssignedEmployees = append(in.AssignedEmployees, models.ShiftEmployee{
				EmployeeID: employeeID,
				PumpID:     pumpID,
			})
		}
		if startSupervisor != "" {
			in.SupervisorID = &startSupervisor
		}

		created, err := a.shifts.Start(cmd.Context(), in)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Started %s (%s) with opening cash %s\n",
			shift.DisplayNumber(created),
			shift.DisplayName(time.Unix(created.StartTime, 0)),
			render.Money(created.OpeningCash),
		)
		return nil
	},
}

var (
	closeCash    float64
	closeCashSet bool
	closeTanks   []string
	closeNozzles []string
)

var shiftCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the active shift",
	Long: "Close the active shift. The close form is seeded with the server's\n" +
		"suggested closing cash and a snapshot of every tank dip and nozzle\n" +
		"counter; flags override individual rows:\n" +
		"  --cash 6200 --tank T-1=14000.5 --nozzle P-1/N-1=533140.25",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if err := a.shifts.Refresh(cmd.Context()); err != nil {
			return err
		}

		form, err := a.shifts.PrepareClose(cmd.Context())
		if err != nil {
			return err
		}
		if form.Degraded {
			fmt.Fprintln(cmd.OutOrStdout(), "⚠️  Suggested closing cash unavailable - defaulting to ₹0.00. Enter the counted cash with --cash.")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Suggested closing cash: %s\n", render.Money(form.SuggestedClosingCash))
		}

		tankOverrides, err := parseOverrides(closeTanks)
		if err != nil {
			return err
		}
		nozzleOverrides, err := parseOverrides(closeNozzles)
		if err != nil {
			return err
		}

		in := shift.CloseShiftInput{
			ClosingCash:  form.SuggestedClosingCash,
			EndTime:      time.Now(),
			TankReadings: append([]models.TankReading(nil), form.TankReadings...),
			PumpReadings: append([]models.PumpReading(nil), form.PumpReadings...),
		}
		if closeCashSet {
			in.ClosingCash = closeCash
		}
		for i := range in.TankReadings {
			if v, ok := tankOverrides[in.TankReadings[i].TankID]; ok {
				in.TankReadings[i].ClosingReading = v
				delete(tankOverrides, in.TankReadings[i].TankID)
			}
		}
		for i := range in.PumpReadings {
			key := in.PumpReadings[i].PumpID + "/" + in.PumpReadings[i].NozzleID
			if v, ok := nozzleOverrides[key]; ok {
				in.PumpReadings[i].ClosingReading = v
				delete(nozzleOverrides, key)
			}
		}
		for id := range tankOverrides {
			return fmt.Errorf("unknown tank %q", id)
		}
		for id := range nozzleOverrides {
			return fmt.Errorf("unknown nozzle %q", id)
		}

		if err := a.shifts.Close(cmd.Context(), form, in); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Shift closed.")
		for i := range a.shifts.Shifts() {
			s := &a.shifts.Shifts()[i]
			if s.ID == form.ShiftID {
				fmt.Fprintln(cmd.OutOrStdout())
				render.ShiftDetails(cmd.OutOrStdout(), s, time.Now())
				break
			}
		}
		return nil
	},
}

// parseOverrides turns repeated KEY=VALUE flags into a map
func parseOverrides(specs []string) (map[string]float64, error) {
	overrides := make(map[string]float64, len(specs))
	for _, spec := range specs {
		key, raw, found := strings.Cut(spec, "=")
		if !found {
			return nil, fmt.Errorf("expected KEY=VALUE, got %q", spec)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid reading %q: %w", spec, err)
		}
		overrides[key] = value
	}
	return overrides, nil
}

func init() {
	shiftStartCmd.Flags().Float64Var(&startOpeningCash, "cash", 0, "opening cash float")
	shiftStartCmd.Flags().StringArrayVar(&startEmployees, "employee", nil, "assigned employee, EMPLOYEE[:PUMP] (repeatable)")
	shiftStartCmd.Flags().StringVar(&startSupervisor, "supervisor", "", "supervising employee id")
	shiftStartCmd.MarkFlagRequired("cash")

	shiftCloseCmd.Flags().Float64Var(&closeCash, "cash", 0, "counted closing cash (defaults to the server suggestion)")
	shiftCloseCmd.Flags().StringArrayVar(&closeTanks, "tank", nil, "closing dip override, TANK=READING (repeatable)")
	shiftCloseCmd.Flags().StringArrayVar(&closeNozzles, "nozzle", nil, "closing counter override, PUMP/NOZZLE=READING (repeatable)")
	shiftCloseCmd.PreRun = func(cmd *cobra.Command, args []string) {
		closeCashSet = cmd.Flags().Changed("cash")
	}

	shiftCmd.AddCommand(shiftStatusCmd, shiftListCmd, shiftStartCmd, shiftCloseCmd)
}
