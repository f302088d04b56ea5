package autofill

import (
	"errors"
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

func planShift(id string, day, required int, employeeIDs ...string) model.Shift {
	s := model.Shift{
		ID:                id,
		SiteID:            "site-1",
		Start:             at(day, 8),
		End:               at(day, 16),
		RequiredEmployees: required,
		ShiftType:         "DAY",
		Status:            "PLANNED",
	}
	for _, empID := range employeeIDs {
		s.Assignments = append(s.Assignments, model.Assignment{
			ID: "a-" + id + "-" + empID, ShiftID: id, EmployeeID: empID, Status: model.AssignmentAssigned,
		})
	}
	return s
}

func guardPool(n int) []model.Employee {
	pool := make([]model.Employee, 0, n)
	for i := 1; i <= n; i++ {
		pool = append(pool, model.Employee{ID: fmt.Sprintf("emp-%d", i)})
	}
	return pool
}

func planInput(shifts []model.Shift, pool []model.Employee) Input {
	return Input{
		Shifts: shifts,
		Pool:   pool,
		Options: Options{
			Limits: compliance.DefaultLimits(),
		},
	}
}

func TestRun_PreviewFillsWithoutPersisting(t *testing.T) {
	persistCalls := 0
	in := planInput([]model.Shift{planShift("s-1", 5, 3, "emp-1")}, guardPool(6))
	in.Options.Preview = true
	in.Persist = func(model.Assignment) error {
		persistCalls++
		return nil
	}

	outcome := Run(in)

	assert.Zero(t, persistCalls)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, StatusFilled, outcome.Results[0].Status)
	require.Len(t, outcome.Entries, 2)
	for _, entry := range outcome.Entries {
		assert.Equal(t, "s-1", entry.ShiftID)
		assert.Equal(t, model.AssignmentAssigned, entry.ResultingStatus)
		assert.NotEqual(t, "emp-1", entry.EmployeeID)
	}
	assert.Equal(t, 2, outcome.Summary.Assignments)
	assert.Equal(t, 1, outcome.Summary.Filled)
	for _, assigned := range outcome.Results[0].Assigned {
		assert.False(t, assigned.Persisted)
	}
}

func TestRun_CommitPersistsEachAssignment(t *testing.T) {
	var persisted []model.Assignment
	in := planInput([]model.Shift{planShift("s-1", 5, 2)}, guardPool(4))
	in.Persist = func(a model.Assignment) error {
		persisted = append(persisted, a)
		return nil
	}

	outcome := Run(in)

	require.Len(t, persisted, 2)
	for _, a := range persisted {
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, "s-1", a.ShiftID)
		assert.Equal(t, model.AssignmentAssigned, a.Status)
	}
	assert.NotEqual(t, persisted[0].ID, persisted[1].ID)
	require.Len(t, outcome.Results, 1)
	for _, assigned := range outcome.Results[0].Assigned {
		assert.True(t, assigned.Persisted)
	}
}

func TestRun_SkipsFullyStaffedShifts(t *testing.T) {
	in := planInput([]model.Shift{planShift("s-1", 5, 1, "emp-1")}, guardPool(3))

	outcome := Run(in)

	assert.Empty(t, outcome.Results)
	assert.Equal(t, 1, outcome.Summary.ShiftsSkipped)
	assert.Zero(t, outcome.Summary.ShiftsConsidered)
}

func TestRun_UnqualifiedCandidatesNeverAssigned(t *testing.T) {
	s := planShift("s-1", 5, 1)
	s.RequiredQualifications = []string{"34a"}
	pool := []model.Employee{
		{ID: "emp-unqualified"},
		{ID: "emp-qualified", Qualifications: []string{"34a"}},
	}

	outcome := Run(planInput([]model.Shift{s}, pool))

	require.Len(t, outcome.Entries, 1)
	assert.Equal(t, "emp-qualified", outcome.Entries[0].EmployeeID)
}

func TestRun_NoEligibleQualifiedCandidates(t *testing.T) {
	s := planShift("s-1", 5, 1)
	s.RequiredQualifications = []string{"34a"}

	outcome := Run(planInput([]model.Shift{s}, guardPool(3)))

	require.Len(t, outcome.Results, 1)
	assert.Equal(t, StatusUnfilled, outcome.Results[0].Status)
	assert.Empty(t, outcome.Entries)
	assert.Equal(t, 1, outcome.Summary.Unfilled)
}

func TestRun_ApprovedAbsenceExcludesCandidate(t *testing.T) {
	in := planInput([]model.Shift{planShift("s-1", 5, 1)}, guardPool(2))
	in.Absences = []model.Absence{
		{ID: "ab-1", EmployeeID: "emp-1", Status: model.AbsenceApproved, Start: at(5, 0), End: at(6, 0)},
	}

	outcome := Run(in)

	require.Len(t, outcome.Entries, 1)
	assert.Equal(t, "emp-2", outcome.Entries[0].EmployeeID)
}

func TestRun_RequestedAbsenceKeepsCandidateAvailable(t *testing.T) {
	in := planInput([]model.Shift{planShift("s-1", 5, 1)}, guardPool(1))
	in.Absences = []model.Absence{
		{ID: "ab-1", EmployeeID: "emp-1", Status: model.AbsenceRequested, Start: at(5, 0), End: at(6, 0)},
	}

	outcome := Run(in)

	require.Len(t, outcome.Entries, 1)
	assert.Equal(t, "emp-1", outcome.Entries[0].EmployeeID)
}

func TestRun_LedgerPreventsDoubleBooking(t *testing.T) {
	// One candidate, two overlapping shifts: the ledger entry from the
	// first shift excludes them from the second.
	first := planShift("s-1", 5, 1)
	second := planShift("s-2", 5, 1)
	second.Start = at(5, 12)
	second.End = at(5, 20)

	outcome := Run(planInput([]model.Shift{first, second}, guardPool(1)))

	require.Len(t, outcome.Entries, 1)
	assert.Equal(t, "s-1", outcome.Entries[0].ShiftID)
	require.Len(t, outcome.Results, 2)
	assert.Equal(t, StatusFilled, outcome.Results[0].Status)
	assert.Equal(t, StatusUnfilled, outcome.Results[1].Status)
}

func TestRun_ExistingOverlappingAssignmentExcludesCandidate(t *testing.T) {
	overlapping := planShift("s-busy", 5, 1, "emp-1")
	overlapping.Start = at(5, 12)
	overlapping.End = at(5, 20)
	target := planShift("s-open", 5, 1)

	outcome := Run(planInput([]model.Shift{overlapping, target}, guardPool(1)))

	assert.Empty(t, outcome.Entries)
}

func TestRun_MinimumTierFloor(t *testing.T) {
	// A lone candidate with no preferences scores 79 (GOOD); an OPTIMAL
	// floor rejects them, a GOOD floor accepts them.
	in := planInput([]model.Shift{planShift("s-1", 5, 1)}, guardPool(1))
	in.Options.MinimumTier = model.RecommendationOptimal

	rejected := Run(in)
	require.Len(t, rejected.Results, 1)
	assert.Equal(t, StatusUnfilled, rejected.Results[0].Status)

	in.Options.MinimumTier = model.RecommendationGood
	accepted := Run(in)
	require.Len(t, accepted.Entries, 1)
	assert.Equal(t, model.RecommendationGood, accepted.Results[0].Assigned[0].Recommendation)
}

func TestRun_PartialFill(t *testing.T) {
	outcome := Run(planInput([]model.Shift{planShift("s-1", 5, 3)}, guardPool(2)))

	require.Len(t, outcome.Results, 1)
	assert.Equal(t, StatusPartiallyFilled, outcome.Results[0].Status)
	assert.Len(t, outcome.Entries, 2)
	assert.Equal(t, 1, outcome.Summary.PartiallyFilled)
}

func TestRun_PersistErrorRecordedAndRunContinues(t *testing.T) {
	shifts := []model.Shift{planShift("s-1", 5, 1), planShift("s-2", 6, 1)}
	calls := 0
	in := planInput(shifts, guardPool(3))
	in.Persist = func(model.Assignment) error {
		calls++
		if calls == 1 {
			return errors.New("insert failed")
		}
		return nil
	}

	outcome := Run(in)

	require.Len(t, outcome.Results, 2)
	assert.Equal(t, StatusUnfilled, outcome.Results[0].Status)
	assert.Equal(t, "insert failed", outcome.Results[0].Error)
	assert.Equal(t, StatusFilled, outcome.Results[1].Status)
	assert.Empty(t, outcome.Results[1].Error)
	require.Len(t, outcome.Entries, 1)
	assert.Equal(t, "s-2", outcome.Entries[0].ShiftID)
}

func TestRun_FillOrderChronologicalWithSiteFilter(t *testing.T) {
	late := planShift("s-late", 6, 1)
	early := planShift("s-early", 5, 1)
	otherSite := planShift("s-other", 5, 1)
	otherSite.SiteID = "site-2"

	in := planInput([]model.Shift{late, otherSite, early}, guardPool(4))
	in.Options.SiteID = "site-1"

	outcome := Run(in)

	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "s-early", outcome.Results[0].ShiftID)
	assert.Equal(t, "s-late", outcome.Results[1].ShiftID)
}

func TestRun_RangeFilter(t *testing.T) {
	in := planInput([]model.Shift{
		planShift("s-in", 5, 1),
		planShift("s-before", 2, 1),
		planShift("s-after", 12, 1),
	}, guardPool(3))
	in.Options.From = at(4, 0)
	in.Options.To = at(10, 0)

	outcome := Run(in)

	require.Len(t, outcome.Results, 1)
	assert.Equal(t, "s-in", outcome.Results[0].ShiftID)
}

func TestRun_SpreadsLoadAcrossPool(t *testing.T) {
	// Two same-day non-overlapping shifts and two identical candidates:
	// the ledger entry from the first shift costs its holder a projected
	// rest violation, so the second shift goes to the other employee.
	first := planShift("s-1", 5, 1)
	second := planShift("s-2", 5, 1)
	second.Start = at(5, 18)
	second.End = at(5, 23)

	outcome := Run(planInput([]model.Shift{first, second}, guardPool(2)))

	require.Len(t, outcome.Entries, 2)
	assert.NotEqual(t, outcome.Entries[0].EmployeeID, outcome.Entries[1].EmployeeID)
}

func TestRun_InputShiftsNotMutated(t *testing.T) {
	shifts := []model.Shift{planShift("s-1", 5, 2)}

	Run(planInput(shifts, guardPool(3)))

	assert.Empty(t, shifts[0].Assignments)
}
