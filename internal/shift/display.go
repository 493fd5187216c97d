package shift

import (
	"fmt"
	"time"

	"fuelops/internal/models"
)

// DisplayName infers the shift's display name from its start hour. This is
// presentation only, never persisted, and must be computed the same way
// everywhere a shift name is shown.
//
//	06:00-13:59 Morning, 14:00-21:59 Evening, otherwise Night
func DisplayName(start time.Time) string {
	switch hour := start.Hour(); {
	case hour >= 6 && hour <= 13:
		return "Morning Shift"
	case hour >= 14 && hour <= 21:
		return "Evening Shift"
	default:
		return "Night Shift"
	}
}

// DisplayNumber renders the sequential shift number as SH-NNN
func DisplayNumber(s *models.Shift) string {
	return fmt.Sprintf("SH-%03d", s.ShiftNumber)
}

// Duration returns how long the shift has run: now minus start while
// active, end minus start once closed
func Duration(s *models.Shift, now time.Time) time.Duration {
	start := time.Unix(s.StartTime, 0)
	if s.EndTime != nil {
		return time.Unix(*s.EndTime, 0).Sub(start)
	}
	return now.Sub(start)
}

// FormatDuration renders a span as whole hours and minutes, flooring the
// minutes: 125 minutes is "2h 5m", never rounded up
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d.Minutes())
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}

// CashVariance returns closingCash - openingCash - cashCollected for a
// closed shift. ok is false while the shift has no closing cash yet.
// Negative variance means the drawer came up short and gets flagged.
func CashVariance(s *models.Shift) (float64, bool) {
	if s.ClosingCash == nil {
		return 0, false
	}
	return *s.ClosingCash - s.OpeningCash - s.CashCollected, true
}
