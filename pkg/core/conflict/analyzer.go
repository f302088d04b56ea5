// Package conflict scans a roster snapshot and emits typed scheduling
// conflicts. Analysis is a total function: an empty roster yields an empty
// conflict list, never an error.
package conflict

import (
	"fmt"
	"sort"
	"time"

	"github.com/guardwatch/roster/pkg/core/compliance"
	"github.com/guardwatch/roster/pkg/core/model"
	"github.com/guardwatch/roster/pkg/core/timewindow"
)

// UnassignedEscalationWindow escalates an UNASSIGNED conflict to high
// severity when the shift starts within this window of "now"
const UnassignedEscalationWindow = 48 * time.Hour

// Snapshot is the immutable roster state handed to the analyzer. Employees
// are keyed by ID and carry the clearances and qualifications of everyone
// assigned in the shift set.
type Snapshot struct {
	Shifts    []model.Shift
	Absences  []model.Absence
	Employees map[string]model.Employee
}

// Range restricts analysis to shifts starting inside [From, To). A zero
// range places no restriction.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) contains(t time.Time) bool {
	if r.From.IsZero() && r.To.IsZero() {
		return true
	}
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

// Analyze scans the snapshot and returns every detected conflict. One shift
// may produce multiple conflicts of different types. The result ordering is
// deterministic for a given snapshot.
func Analyze(snap Snapshot, rng Range, now time.Time, limits compliance.Limits) []model.Conflict {
	shifts := make([]model.Shift, 0, len(snap.Shifts))
	for _, s := range snap.Shifts {
		if rng.contains(s.Start) {
			shifts = append(shifts, s)
		}
	}
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Start.Equal(shifts[j].Start) {
			return shifts[i].ID < shifts[j].ID
		}
		return shifts[i].Start.Before(shifts[j].Start)
	})

	conflicts := []model.Conflict{}
	for _, s := range shifts {
		conflicts = append(conflicts, analyzeStaffing(s, snap, now)...)
		conflicts = append(conflicts, analyzeAssignees(s, snap)...)
	}
	conflicts = append(conflicts, analyzeEmployeeSchedules(shifts, limits)...)
	return conflicts
}

// analyzeStaffing checks headcount against the required staffing level.
// Assigned employees with an approved absence overlapping the shift are
// excluded from the effective headcount, folding absence coverage into the
// understaffing check.
func analyzeStaffing(s model.Shift, snap Snapshot, now time.Time) []model.Conflict {
	active := s.ActiveAssignments()

	if len(active) == 0 {
		severity := model.SeverityMedium
		if s.Start.Sub(now) <= UnassignedEscalationWindow {
			severity = model.SeverityHigh
		}
		return []model.Conflict{{
			Type:        model.ConflictUnassigned,
			Severity:    severity,
			ShiftID:     s.ID,
			Description: fmt.Sprintf("shift has no assigned employees (%d required)", s.RequiredEmployees),
		}}
	}

	var conflicts []model.Conflict

	effective := 0
	var absentIDs []string
	for _, a := range active {
		if hasApprovedAbsence(snap.Absences, a.EmployeeID, s) {
			absentIDs = append(absentIDs, a.EmployeeID)
			continue
		}
		effective++
	}

	if s.RequiredEmployees > 0 && effective < s.RequiredEmployees {
		shortage := s.RequiredEmployees - effective
		severity := model.SeverityMedium
		if shortage*2 > s.RequiredEmployees {
			severity = model.SeverityHigh
		}
		conflicts = append(conflicts, model.Conflict{
			Type:        model.ConflictUnderstaffed,
			Severity:    severity,
			ShiftID:     s.ID,
			Description: fmt.Sprintf("shift has %d of %d required employees", effective, s.RequiredEmployees),
			EmployeeIDs: absentIDs,
		})
	}

	if len(active) > s.RequiredEmployees {
		conflicts = append(conflicts, model.Conflict{
			Type:        model.ConflictOverstaffed,
			Severity:    model.SeverityLow,
			ShiftID:     s.ID,
			Description: fmt.Sprintf("shift has %d assigned employees but requires only %d", len(active), s.RequiredEmployees),
		})
	}

	return conflicts
}

// analyzeAssignees checks each assigned employee for clearance and
// qualification problems
func analyzeAssignees(s model.Shift, snap Snapshot) []model.Conflict {
	var conflicts []model.Conflict
	for _, a := range s.ActiveAssignments() {
		emp, ok := snap.Employees[a.EmployeeID]
		if !ok {
			continue
		}

		if s.ClearanceRequired && !hasActiveClearance(&emp, s) {
			conflicts = append(conflicts, model.Conflict{
				Type:        model.ConflictNoClearance,
				Severity:    model.SeverityHigh,
				ShiftID:     s.ID,
				Description: fmt.Sprintf("employee %s has no active clearance for site %s", emp.ID, s.SiteID),
				EmployeeIDs: []string{emp.ID},
			})
		}

		if !emp.HasQualifications(s.RequiredQualifications) {
			conflicts = append(conflicts, model.Conflict{
				Type:        model.ConflictMissingQualifications,
				Severity:    model.SeverityHigh,
				ShiftID:     s.ID,
				Description: fmt.Sprintf("employee %s is missing required qualifications", emp.ID),
				EmployeeIDs: []string{emp.ID},
			})
		}
	}
	return conflicts
}

// analyzeEmployeeSchedules runs the cross-shift checks per employee: double
// bookings, rest-gap violations, weekly hour caps, and consecutive day caps
func analyzeEmployeeSchedules(shifts []model.Shift, limits compliance.Limits) []model.Conflict {
	byEmployee := make(map[string][]model.Shift)
	for _, s := range shifts {
		for _, a := range s.ActiveAssignments() {
			byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], s)
		}
	}

	employeeIDs := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	var conflicts []model.Conflict
	for _, empID := range employeeIDs {
		own := byEmployee[empID]
		sort.Slice(own, func(i, j int) bool { return own[i].Start.Before(own[j].Start) })

		conflicts = append(conflicts, doubleBookings(empID, own)...)

		for _, v := range compliance.RestGapViolations(own, limits.MinRestHours) {
			conflicts = append(conflicts, model.Conflict{
				Type:        model.ConflictRestTimeViolation,
				Severity:    model.SeverityHigh,
				ShiftID:     v.LaterShiftID,
				Description: fmt.Sprintf("employee %s has only %.1fh rest before shift %s (minimum %.0fh)", empID, v.GapHours, v.LaterShiftID, limits.MinRestHours),
				EmployeeIDs: []string{empID},
			})
		}

		for _, s := range own {
			hours := compliance.ScheduledWeeklyHours(own, s)
			if hours > limits.WeeklyHoursCap {
				conflicts = append(conflicts, model.Conflict{
					Type:        model.ConflictWeeklyHoursExceeded,
					Severity:    model.SeverityMedium,
					ShiftID:     s.ID,
					Description: fmt.Sprintf("employee %s is scheduled %.1fh in the week of shift %s (cap %.0fh)", empID, hours, s.ID, limits.WeeklyHoursCap),
					EmployeeIDs: []string{empID},
				})
				break
			}
		}

		for _, s := range own {
			days := compliance.ConsecutiveShiftDays(own, s.Start)
			if days > limits.ConsecutiveDaysCap {
				conflicts = append(conflicts, model.Conflict{
					Type:        model.ConflictConsecutiveDaysExceeded,
					Severity:    model.SeverityMedium,
					ShiftID:     s.ID,
					Description: fmt.Sprintf("employee %s works %d consecutive days through shift %s (cap %d)", empID, days, s.ID, limits.ConsecutiveDaysCap),
					EmployeeIDs: []string{empID},
				})
				break
			}
		}
	}
	return conflicts
}

// doubleBookings reports every pair of the employee's shifts whose time
// windows overlap, attributed to the later shift of the pair
func doubleBookings(empID string, own []model.Shift) []model.Conflict {
	var conflicts []model.Conflict
	for i := 0; i < len(own); i++ {
		for j := i + 1; j < len(own); j++ {
			a, b := own[i], own[j]
			aEnd := timewindow.NormalizedEnd(a.Start, a.End)
			bEnd := timewindow.NormalizedEnd(b.Start, b.End)
			if timewindow.Overlaps(a.Start, aEnd, b.Start, bEnd) {
				conflicts = append(conflicts, model.Conflict{
					Type:        model.ConflictDoubleBooking,
					Severity:    model.SeverityCritical,
					ShiftID:     b.ID,
					Description: fmt.Sprintf("employee %s is assigned to overlapping shifts %s and %s", empID, a.ID, b.ID),
					EmployeeIDs: []string{empID},
				})
			}
		}
	}
	return conflicts
}

func hasApprovedAbsence(absences []model.Absence, employeeID string, s model.Shift) bool {
	end := timewindow.NormalizedEnd(s.Start, s.End)
	for _, ab := range absences {
		if ab.EmployeeID != employeeID || ab.Status != model.AbsenceApproved {
			continue
		}
		if timewindow.Overlaps(s.Start, end, ab.Start, ab.End) {
			return true
		}
	}
	return false
}

func hasActiveClearance(emp *model.Employee, s model.Shift) bool {
	c := emp.ClearanceFor(s.SiteID)
	if c == nil || c.Status != model.ClearanceActive {
		return false
	}
	return c.ValidUntil.IsZero() || !c.ValidUntil.Before(s.Start)
}
