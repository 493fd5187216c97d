// Package render formats shift and attendance state for the terminal. It
// only displays server state: aggregates, discrepancies and percentage
// strings are shown exactly as received, never recomputed.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"fuelops/internal/models"
	"fuelops/internal/shift"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const progressBarWidth = 20

var printer = message.NewPrinter(language.English)

// Money formats a rupee amount with thousands grouping
func Money(amount float64) string {
	return printer.Sprintf("₹%.2f", amount)
}

// ShiftList renders the shift history table, newest last
func ShiftList(w io.Writer, shifts []models.Shift, now time.Time) {
	if len(shifts) == 0 {
		fmt.Fprintln(w, "No shifts recorded yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tNAME\tSTATUS\tDURATION\tOPENING\tTOTAL SALES")
	for i := range shifts {
		s := &shifts[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shift.DisplayNumber(s),
			shift.DisplayName(time.Unix(s.StartTime, 0)),
			s.Status,
			shift.FormatDuration(shift.Duration(s, now)),
			Money(s.OpeningCash),
			Money(s.TotalSales),
		)
	}
	tw.Flush()
}

// ShiftDetails renders the full detail view of one shift, including the
// cash reconciliation section with variance flagging for closed shifts
func ShiftDetails(w io.Writer, s *models.Shift, now time.Time) {
	start := time.Unix(s.StartTime, 0)

	fmt.Fprintf(w, "%s %s (%s)\n", shift.DisplayNumber(s), shift.DisplayName(start), s.Status)
	fmt.Fprintf(w, "Started:  %s\n", start.Format("02 Jan 2006 15:04"))
	if s.EndTime != nil {
		fmt.Fprintf(w, "Ended:    %s\n", time.Unix(*s.EndTime, 0).Format("02 Jan 2006 15:04"))
	}
	fmt.Fprintf(w, "Duration: %s\n", shift.FormatDuration(shift.Duration(s, now)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Opening cash:   %s\n", Money(s.OpeningCash))
	if s.ClosingCash != nil {
		fmt.Fprintf(w, "Closing cash:   %s\n", Money(*s.ClosingCash))
	}
	fmt.Fprintf(w, "Total sales:    %s\n", Money(s.TotalSales))
	fmt.Fprintf(w, "Cash collected: %s\n", Money(s.CashCollected))
	fmt.Fprintf(w, "Card payments:  %s\n", Money(s.CardPayments))
	fmt.Fprintf(w, "UPI payments:   %s\n", Money(s.UPIPayments))

	if variance, ok := shift.CashVariance(s); ok {
		if variance < 0 {
			fmt.Fprintf(w, "Cash variance:  %s  ⚠️ SHORT\n", Money(variance))
		} else {
			fmt.Fprintf(w, "Cash variance:  %s\n", Money(variance))
		}
	}

	if len(s.TankReadings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tank readings:")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  TANK\tFUEL\tOPENING\tCLOSING")
		for _, tr := range s.TankReadings {
			fmt.Fprintf(tw, "  %s\t%s\t%.2f\t%.2f\n", tr.TankName, tr.FuelType, tr.OpeningReading, tr.ClosingReading)
		}
		tw.Flush()
	}

	if len(s.PumpReadings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Nozzle readings:")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  PUMP\tNOZZLE\tFUEL\tOPENING\tCLOSING")
		for _, pr := range s.PumpReadings {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%.2f\t%.2f\n", pr.PumpID, pr.NozzleID, pr.FuelType, pr.OpeningReading, pr.ClosingReading)
		}
		tw.Flush()
	}

	if len(s.Discrepancies) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Discrepancies:")
		for _, d := range s.Discrepancies {
			fmt.Fprintf(w, "  ⚠️ %s (%s)\n", d.Reason, Money(d.Amount))
		}
	}
}

// ShiftAttendance renders the today view: one row per employee with their
// marked status or the not_marked placeholder
func ShiftAttendance(w io.Writer, rows []models.ShiftAttendanceRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No employees found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tSTATUS\tMARKED AT\tNOTES")
	for _, row := range rows {
		markedAt := "-"
		if row.MarkedAt != nil {
			markedAt = time.Unix(*row.MarkedAt, 0).Format("15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.EmployeeName, row.Status, markedAt, row.Notes)
	}
	tw.Flush()
}

// MonthlySummary renders the per-employee monthly aggregates. The
// percentage string sizes the progress bar and is printed verbatim as the
// label; the client never re-derives it from the day counts.
func MonthlySummary(w io.Writer, rows []models.MonthlySummaryRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No attendance data for this month.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tTOTAL\tPRESENT\tABSENT\tLEAVE\tATTENDANCE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s %s\n",
			row.EmployeeName,
			row.TotalDays,
			row.PresentDays,
			row.AbsentDays,
			row.LeaveDays,
			ProgressBar(row.AttendancePercentage, progressBarWidth),
			row.AttendancePercentage,
		)
	}
	tw.Flush()
}

// History renders an employee's attendance records with shift linkage. An
// empty history gets its own message, it is not an error.
func History(w io.Writer, records []models.AttendanceRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No attendance records found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHIFT\tSTATUS\tMARKED AT\tNOTES")
	for _, rec := range records {
		markedAt := "-"
		if rec.MarkedAt != nil {
			markedAt = time.Unix(*rec.MarkedAt, 0).Format("02 Jan 2006 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.ShiftID, rec.Status, markedAt, rec.Notes)
	}
	tw.Flush()
}

// ProgressBar sizes a bar from a server-formatted percentage string like
// "82.5%". Only the already-formatted string drives the width.
func ProgressBar(percentage string, width int) string {
	value, err := strconv.ParseFloat(strings.TrimSuffix(percentage, "%"), 64)
	if err != nil || value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := int(value * float64(width) / 100)
	return "[" + strings.Repeat("█", filled) + strings.Repeat(" ", width-filled) + "]"
}
