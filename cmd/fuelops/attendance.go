package main

import (
	"fmt"
	"time"

	"fuelops/internal/attendance"
	"fuelops/internal/models"
	"fuelops/internal/render"

	"github.com/spf13/cobra"
)

var attendanceCmd = &cobra.Command{
	Use:     "attendance",
	Aliases: []string{"att"},
	Short:   "Mark and review employee attendance",
}

// refreshShifts resyncs the shift list so attendance commands see the
// same active-shift state the server does
func refreshShifts(cmd *cobra.Command) error {
	if err := requireAuth(); err != nil {
		return err
	}
	return a.shifts.Refresh(cmd.Context())
}

var attendanceTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show attendance for the active shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := refreshShifts(cmd); err != nil {
			return err
		}
		active := a.shifts.ActiveShift()
		if active == nil {
			return attendance.ErrNoActiveShift
		}

		rows, err := a.attendance.ShiftAttendance(cmd.Context(), active.ID)
		if err != nil {
			return err
		}
		render.ShiftAttendance(cmd.OutOrStdout(), rows)
		return nil
	},
}

var attendanceQuickCmd = &cobra.Command{
	Use:   "quick EMPLOYEE STATUS",
	Short: "Quick-mark an employee for the active shift",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := refreshShifts(cmd); err != nil {
			return err
		}
		status := models.AttendanceStatus(args[1])
		if err := a.attendance.QuickMark(cmd.Context(), args[0], status); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s.\n", args[0], status)
		return nil
	},
}

var markNotes string

var attendanceMarkCmd = &cobra.Command{
	Use:   "mark EMPLOYEE STATUS",
	Short: "Mark an employee with optional notes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := refreshShifts(cmd); err != nil {
			return err
		}
		in := attendance.MarkInput{
			EmployeeID: args[0],
			Status:     models.AttendanceStatus(args[1]),
			Notes:      markNotes,
		}
		if err := a.attendance.Mark(cmd.Context(), in); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s.\n", in.EmployeeID, in.Status)
		return nil
	},
}

var deleteConfirmed bool

var attendanceDeleteCmd = &cobra.Command{
	Use:   "delete EMPLOYEE",
	Short: "Delete an employee's record for the active shift",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := refreshShifts(cmd); err != nil {
			return err
		}
		if !deleteConfirmed {
			return fmt.Errorf("this removes %s's attendance for the active shift - re-run with --yes to confirm", args[0])
		}
		if err := a.attendance.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Attendance record deleted for %s.\n", args[0])
		return nil
	},
}

var (
	summaryMonth int
	summaryYear  int
)

var attendanceSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the monthly attendance summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		now := time.Now()
		if summaryMonth == 0 {
			summaryMonth = int(now.Month())
		}
		if summaryYear == 0 {
			summaryYear = now.Year()
		}

		rows, err := a.attendance.MonthlySummary(cmd.Context(), time.Month(summaryMonth), summaryYear)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Attendance for %s %d\n\n", time.Month(summaryMonth), summaryYear)
		render.MonthlySummary(cmd.OutOrStdout(), rows)
		return nil
	},
}

var attendanceHistoryCmd = &cobra.Command{
	Use:   "history EMPLOYEE",
	Short: "Show an employee's attendance history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		records, err := a.attendance.History(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		render.History(cmd.OutOrStdout(), records)
		return nil
	},
}

func init() {
	attendanceMarkCmd.Flags().StringVar(&markNotes, "notes", "", "free-text notes")
	attendanceDeleteCmd.Flags().BoolVar(&deleteConfirmed, "yes", false, "confirm the deletion")
	attendanceSummaryCmd.Flags().IntVar(&summaryMonth, "month", 0, "month 1-12 (default: current)")
	attendanceSummaryCmd.Flags().IntVar(&summaryYear, "year", 0, "year (default: current)")

	attendanceCmd.AddCommand(
		attendanceTodayCmd,
		attendanceQuickCmd,
		attendanceMarkCmd,
		attendanceDeleteCmd,
		attendanceSummaryCmd,
		attendanceHistoryCmd,
	)
}
