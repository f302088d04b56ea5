package conflict

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardwatch/roster/pkg/core/compliance"
	"github.com/guardwatch/roster/pkg/core/model"
)

func at(day, hour int) time.Time {
	return time.Date(2025, 9, day, hour, 0, 0, 0, time.UTC)
}

func shift(id string, start, end time.Time, required int, employeeIDs ...string) model.Shift {
	s := model.Shift{ID: id, SiteID: "site-1", Start: start, End: end, RequiredEmployees: required}
	for _, empID := range employeeIDs {
		s.Assignments = append(s.Assignments, model.Assignment{
			ID: "a-" + id + "-" + empID, ShiftID: id, EmployeeID: empID, Status: model.AssignmentAssigned,
		})
	}
	return s
}

func employee(id string) model.Employee {
	return model.Employee{ID: id}
}

func clearedEmployee(id, siteID string) model.Employee {
	trained := at(1, 0)
	return model.Employee{ID: id, Clearances: []model.ObjectClearance{
		{SiteID: siteID, Status: model.ClearanceActive, TrainedAt: &trained},
	}}
}

func conflictsOfType(conflicts []model.Conflict, ct model.ConflictType) []model.Conflict {
	var matched []model.Conflict
	for _, c := range conflicts {
		if c.Type == ct {
			matched = append(matched, c)
		}
	}
	return matched
}

func TestAnalyze_EmptySnapshot(t *testing.T) {
	conflicts := Analyze(Snapshot{}, Range{}, at(1, 0), compliance.DefaultLimits())

	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)
}

func TestAnalyze_UnassignedSeverityBoundary(t *testing.T) {
	now := at(1, 0)
	snap := Snapshot{
		Shifts: []model.Shift{
			shift("s-near", at(2, 8), at(2, 16), 1), // 32h out
			shift("s-edge", at(3, 0), at(3, 8), 1),  // exactly 48h out
			shift("s-far", at(4, 8), at(4, 16), 1),  // 80h out
		},
		Employees: map[string]model.Employee{},
	}

	conflicts := Analyze(snap, Range{}, now, compliance.DefaultLimits())

	unassigned := conflictsOfType(conflicts, model.ConflictUnassigned)
	require.Len(t, unassigned, 3)
	bySeverity := map[string]model.Severity{}
	for _, c := range unassigned {
		bySeverity[c.ShiftID] = c.Severity
	}
	assert.Equal(t, model.SeverityHigh, bySeverity["s-near"])
	assert.Equal(t, model.SeverityHigh, bySeverity["s-edge"])
	assert.Equal(t, model.SeverityMedium, bySeverity["s-far"])
}

func TestAnalyze_UnassignedNotDuplicatedAsUnderstaffed(t *testing.T) {
	snap := Snapshot{
		Shifts:    []model.Shift{shift("s-1", at(5, 8), at(5, 16), 2)},
		Employees: map[string]model.Employee{},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ConflictUnassigned, conflicts[0].Type)
}

func TestAnalyze_UnderstaffedSeverity(t *testing.T) {
	snap := Snapshot{
		Shifts: []model.Shift{
			shift("s-half", at(5, 8), at(5, 16), 2, "emp-1"),  // 1 of 2: shortage not over half
			shift("s-third", at(6, 8), at(6, 16), 3, "emp-2"), // 1 of 3: shortage over half
			shift("s-full", at(7, 8), at(7, 16), 2, "emp-3", "emp-4"),
		},
		Employees: map[string]model.Employee{
			"emp-1": employee("emp-1"), "emp-2": employee("emp-2"),
			"emp-3": employee("emp-3"), "emp-4": employee("emp-4"),
		},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	understaffed := conflictsOfType(conflicts, model.ConflictUnderstaffed)
	require.Len(t, understaffed, 2)
	bySeverity := map[string]model.Severity{}
	for _, c := range understaffed {
		bySeverity[c.ShiftID] = c.Severity
	}
	assert.Equal(t, model.SeverityMedium, bySeverity["s-half"])
	assert.Equal(t, model.SeverityHigh, bySeverity["s-third"])
}

func TestAnalyze_ApprovedAbsenceFoldsIntoUnderstaffing(t *testing.T) {
	snap := Snapshot{
		Shifts: []model.Shift{shift("s-1", at(5, 8), at(5, 16), 2, "emp-1", "emp-2")},
		Absences: []model.Absence{
			{ID: "ab-1", EmployeeID: "emp-2", Type: model.AbsenceVacation, Status: model.AbsenceApproved, Start: at(5, 0), End: at(6, 0)},
		},
		Employees: map[string]model.Employee{"emp-1": employee("emp-1"), "emp-2": employee("emp-2")},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	understaffed := conflictsOfType(conflicts, model.ConflictUnderstaffed)
	require.Len(t, understaffed, 1)
	assert.Equal(t, "s-1", understaffed[0].ShiftID)
	assert.Equal(t, []string{"emp-2"}, understaffed[0].EmployeeIDs)
}

func TestAnalyze_RequestedAbsenceDoesNotReduceHeadcount(t *testing.T) {
	snap := Snapshot{
		Shifts: []model.Shift{shift("s-1", at(5, 8), at(5, 16), 2, "emp-1", "emp-2")},
		Absences: []model.Absence{
			{ID: "ab-1", EmployeeID: "emp-2", Status: model.AbsenceRequested, Start: at(5, 0), End: at(6, 0)},
		},
		Employees: map[string]model.Employee{"emp-1": employee("emp-1"), "emp-2": employee("emp-2")},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	assert.Empty(t, conflictsOfType(conflicts, model.ConflictUnderstaffed))
}

func TestAnalyze_Overstaffed(t *testing.T) {
	snap := Snapshot{
		Shifts: []model.Shift{shift("s-1", at(5, 8), at(5, 16), 1, "emp-1", "emp-2")},
		Employees: map[string]model.Employee{"emp-1": employee("emp-1"), "emp-2": employee("emp-2")},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	overstaffed := conflictsOfType(conflicts, model.ConflictOverstaffed)
	require.Len(t, overstaffed, 1)
	assert.Equal(t, model.SeverityLow, overstaffed[0].Severity)
}

func TestAnalyze_NoClearance(t *testing.T) {
	expired := shift("s-1", at(5, 8), at(5, 16), 2, "emp-ok", "emp-expired")
	expired.ClearanceRequired = true
	snap := Snapshot{
		Shifts: []model.Shift{expired},
		Employees: map[string]model.Employee{
			"emp-ok": clearedEmployee("emp-ok", "site-1"),
			"emp-expired": {ID: "emp-expired", Clearances: []model.ObjectClearance{
				{SiteID: "site-1", Status: model.ClearanceExpired},
			}},
		},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	noClearance := conflictsOfType(conflicts, model.ConflictNoClearance)
	require.Len(t, noClearance, 1)
	assert.Equal(t, model.SeverityHigh, noClearance[0].Severity)
	assert.Equal(t, []string{"emp-expired"}, noClearance[0].EmployeeIDs)
	assert.Empty(t, conflictsOfType(conflicts, model.ConflictUnderstaffed))
}

func TestAnalyze_UnderstaffedWithExpiredClearance(t *testing.T) {
	s := shift("s-1", at(5, 8), at(5, 16), 2, "emp-1")
	s.ClearanceRequired = true
	snap := Snapshot{
		Shifts: []model.Shift{s},
		Employees: map[string]model.Employee{
			"emp-1": {ID: "emp-1", Clearances: []model.ObjectClearance{
				{SiteID: "site-1", Status: model.ClearanceExpired},
			}},
		},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	understaffed := conflictsOfType(conflicts, model.ConflictUnderstaffed)
	require.Len(t, understaffed, 1)
	assert.Equal(t, model.SeverityMedium, understaffed[0].Severity)
	noClearance := conflictsOfType(conflicts, model.ConflictNoClearance)
	require.Len(t, noClearance, 1)
	assert.Equal(t, model.SeverityHigh, noClearance[0].Severity)
}

func TestAnalyze_ClearanceExpiredBeforeShiftStart(t *testing.T) {
	s := shift("s-1", at(10, 8), at(10, 16), 1, "emp-1")
	s.ClearanceRequired = true
	emp := clearedEmployee("emp-1", "site-1")
	emp.Clearances[0].ValidUntil = at(9, 0)
	snap := Snapshot{
		Shifts:    []model.Shift{s},
		Employees: map[string]model.Employee{"emp-1": emp},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	assert.Len(t, conflictsOfType(conflicts, model.ConflictNoClearance), 1)
}

func TestAnalyze_MissingQualifications(t *testing.T) {
	s := shift("s-1", at(5, 8), at(5, 16), 1, "emp-1")
	s.RequiredQualifications = []string{"34a", "first-aid"}
	snap := Snapshot{
		Shifts: []model.Shift{s},
		Employees: map[string]model.Employee{
			"emp-1": {ID: "emp-1", Qualifications: []string{"34a"}},
		},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	missing := conflictsOfType(conflicts, model.ConflictMissingQualifications)
	require.Len(t, missing, 1)
	assert.Equal(t, []string{"emp-1"}, missing[0].EmployeeIDs)
}

func TestAnalyze_DoubleBookingReferencesBothShifts(t *testing.T) {
	snap := Snapshot{
		Shifts: []model.Shift{
			shift("s-1", at(5, 8), at(5, 16), 1, "emp-1"),
			shift("s-2", at(5, 12), at(5, 20), 1, "emp-1"),
		},
		Employees: map[string]model.Employee{"emp-1": employee("emp-1")},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	doubled := conflictsOfType(conflicts, model.ConflictDoubleBooking)
	require.Len(t, doubled, 1)
	assert.Equal(t, model.SeverityCritical, doubled[0].Severity)
	assert.Equal(t, "s-2", doubled[0].ShiftID)
	assert.Contains(t, doubled[0].Description, "s-1")
	assert.Contains(t, doubled[0].Description, "s-2")
}

func TestAnalyze_BackToBackShiftsAreNotDoubleBooked(t *testing.T) {
	snap := Snapshot{
		Shifts: []model.Shift{
			shift("s-1", at(5, 0), at(5, 8), 1, "emp-1"),
			shift("s-2", at(5, 8), at(5, 16), 1, "emp-1"),
		},
		Employees: map[string]model.Employee{"emp-1": employee("emp-1")},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	assert.Empty(t, conflictsOfType(conflicts, model.ConflictDoubleBooking))
}

func TestAnalyze_RestTimeViolation(t *testing.T) {
	snap := Snapshot{
		Shifts: []model.Shift{
			shift("s-1", at(5, 8), at(5, 16), 1, "emp-1"),
			shift("s-2", at(5, 22), at(5, 6), 1, "emp-1"),
		},
		Employees: map[string]model.Employee{"emp-1": employee("emp-1")},
	}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	rest := conflictsOfType(conflicts, model.ConflictRestTimeViolation)
	require.Len(t, rest, 1)
	assert.Equal(t, model.SeverityHigh, rest[0].Severity)
	assert.Equal(t, "s-2", rest[0].ShiftID)
	assert.Equal(t, []string{"emp-1"}, rest[0].EmployeeIDs)
}

func TestAnalyze_WeeklyHoursExceededOnce(t *testing.T) {
	// Five 9h shifts inside one week is 45h: over the 40h cap
	shifts := make([]model.Shift, 0, 5)
	for day := 1; day <= 5; day++ {
		shifts = append(shifts, shift(fmt.Sprintf("s-%d", day), at(day, 8), at(day, 17), 1, "emp-1"))
	}
	snap := Snapshot{Shifts: shifts, Employees: map[string]model.Employee{"emp-1": employee("emp-1")}}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	assert.Len(t, conflictsOfType(conflicts, model.ConflictWeeklyHoursExceeded), 1)
}

func TestAnalyze_ConsecutiveDaysExceededOnce(t *testing.T) {
	// Seven 4h shifts on consecutive days keeps weekly hours under the cap
	// while exceeding the 6-day run
	shifts := make([]model.Shift, 0, 7)
	for day := 1; day <= 7; day++ {
		shifts = append(shifts, shift(fmt.Sprintf("s-%d", day), at(day, 8), at(day, 12), 1, "emp-1"))
	}
	snap := Snapshot{Shifts: shifts, Employees: map[string]model.Employee{"emp-1": employee("emp-1")}}

	conflicts := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	consecutive := conflictsOfType(conflicts, model.ConflictConsecutiveDaysExceeded)
	require.Len(t, consecutive, 1)
	assert.Equal(t, "s-7", consecutive[0].ShiftID)
	assert.Empty(t, conflictsOfType(conflicts, model.ConflictWeeklyHoursExceeded))
}

func TestAnalyze_RangeRestrictsShifts(t *testing.T) {
	snap := Snapshot{
		Shifts: []model.Shift{
			shift("s-in", at(5, 8), at(5, 16), 1),
			shift("s-out", at(20, 8), at(20, 16), 1),
		},
		Employees: map[string]model.Employee{},
	}

	conflicts := Analyze(snap, Range{From: at(4, 0), To: at(10, 0)}, at(1, 0), compliance.DefaultLimits())

	require.Len(t, conflicts, 1)
	assert.Equal(t, "s-in", conflicts[0].ShiftID)
}

func TestAnalyze_Idempotent(t *testing.T) {
	snap := Snapshot{
		Shifts: []model.Shift{
			shift("s-1", at(5, 8), at(5, 16), 2, "emp-1"),
			shift("s-2", at(5, 12), at(5, 20), 1, "emp-1"),
		},
		Employees: map[string]model.Employee{"emp-1": employee("emp-1")},
	}

	first := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())
	second := Analyze(snap, Range{}, at(1, 0), compliance.DefaultLimits())

	assert.Equal(t, first, second)
}
