package compliance

import (
	"sort"
	"time"

	"github.com/guardwatch/roster/pkg/core/model"
	"github.com/guardwatch/roster/pkg/core/timewindow"
)

// Limits holds the configurable roster-level compliance caps
type Limits struct {
	WeeklyHoursCap     float64
	ConsecutiveDaysCap int
	MinRestHours       float64
}

// DefaultLimits returns the caps applied when no configuration overrides them
func DefaultLimits() Limits {
	return Limits{
		WeeklyHoursCap:     40.0,
		ConsecutiveDaysCap: 6,
		MinRestHours:       MinRestHours,
	}
}

// EmployeeShifts filters shifts down to those where the employee holds an
// active assignment, sorted chronologically
func EmployeeShifts(shifts []model.Shift, employeeID string) []model.Shift {
	var own []model.Shift
	for _, s := range shifts {
		if s.HasEmployee(employeeID) {
			own = append(own, s)
		}
	}
	sort.Slice(own, func(i, j int) bool { return own[i].Start.Before(own[j].Start) })
	return own
}

// ScheduledWeeklyHours sums the scheduled hours of the given shifts inside
// the rolling 7-day window ending on the target shift's calendar day. The
// target shift itself counts only if present in the slice, which lets the
// scorer project a tentative assignment by appending it.
func ScheduledWeeklyHours(employeeShifts []model.Shift, target model.Shift) float64 {
	windowEnd := startOfDay(target.Start).AddDate(0, 0, 1)
	windowStart := windowEnd.AddDate(0, 0, -7)

	total := 0.0
	for _, s := range employeeShifts {
		if s.Start.Before(windowStart) || !s.Start.Before(windowEnd) {
			continue
		}
		total += timewindow.DurationHours(s.Start, s.End)
	}
	return total
}

// ConsecutiveShiftDays counts the uninterrupted run of calendar days with at
// least one shift, ending at the given day (inclusive)
func ConsecutiveShiftDays(employeeShifts []model.Shift, day time.Time) int {
	scheduled := make(map[time.Time]bool, len(employeeShifts))
	for _, s := range employeeShifts {
		scheduled[startOfDay(s.Start)] = true
	}

	count := 0
	for d := startOfDay(day); scheduled[d]; d = d.AddDate(0, 0, -1) {
		count++
	}
	return count
}

// RestViolation records a too-short gap between two chronologically adjacent
// shifts of one employee, attributed to the later shift
type RestViolation struct {
	EarlierShiftID string
	LaterShiftID   string
	GapHours       float64
}

// RestGapViolations returns every adjacent pair of the employee's shifts
// whose rest gap is under the minimum. Overlapping pairs (negative gap) are
// skipped here; they surface as double bookings instead.
func RestGapViolations(employeeShifts []model.Shift, minRestHours float64) []RestViolation {
	sorted := make([]model.Shift, len(employeeShifts))
	copy(sorted, employeeShifts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var violations []RestViolation
	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		prevEnd := timewindow.NormalizedEnd(prev.Start, prev.End)
		gap := timewindow.RestGapHours(prevEnd, next.Start)
		if gap >= 0 && gap < minRestHours {
			violations = append(violations, RestViolation{
				EarlierShiftID: prev.ID,
				LaterShiftID:   next.ID,
				GapHours:       gap,
			})
		}
	}
	return violations
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
