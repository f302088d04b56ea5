// Package autofill implements the greedy assignment planner. It walks
// understaffed shifts in chronological order, scores the available pool for
// each, and assigns top candidates while maintaining an in-memory ledger of
// tentative assignments so later shifts see the updated load. The ledger is
// call-scoped: it never outlives one planning run and must not be shared
// across concurrent runs over overlapping shifts.
package autofill

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/guardwatch/roster/pkg/core/compliance"
	"github.com/guardwatch/roster/pkg/core/model"
	"github.com/guardwatch/roster/pkg/core/scoring"
	"github.com/guardwatch/roster/pkg/core/timewindow"
)

// FillStatus classifies the planner's outcome for one shift
type FillStatus string

const (
	StatusFilled          FillStatus = "filled"
	StatusPartiallyFilled FillStatus = "partially_filled"
	StatusUnfilled        FillStatus = "unfilled"
)

// PersistFunc is invoked once per successful assignment in commit mode. A
// returned error is recorded on the shift's result; the run continues with
// the next shift.
type PersistFunc func(model.Assignment) error

// Options configures one planning run
type Options struct {
	// From/To restrict which shifts are filled; zero values mean no bound
	From time.Time
	To   time.Time

	// SiteID, when set, restricts filling to shifts at that site
	SiteID string

	// Preview runs the identical planning logic but never invokes the
	// persistence callback
	Preview bool

	// MinimumTier is the acceptability floor for auto-assignment; zero
	// value defaults to ACCEPTABLE
	MinimumTier model.Recommendation

	Limits compliance.Limits
}

// Input is the roster snapshot and policy for one planning run
type Input struct {
	Shifts   []model.Shift
	Pool     []model.Employee
	Absences []model.Absence
	Options  Options
	Persist  PersistFunc
}

// CandidateOutcome records one assignment decision on a shift result
type CandidateOutcome struct {
	EmployeeID     string
	Score          float64
	Recommendation model.Recommendation
	Persisted      bool
}

// ShiftResult is the planner's per-shift report entry
type ShiftResult struct {
	ShiftID  string
	Status   FillStatus
	Assigned []CandidateOutcome
	// Error holds the persistence failure message for this shift, if any
	Error string
}

// Summary aggregates a planning run
type Summary struct {
	ShiftsConsidered int
	ShiftsSkipped    int
	Filled           int
	PartiallyFilled  int
	Unfilled         int
	Assignments      int
}

// Outcome is the full planning report. In preview mode Entries are the
// discarded ledger contents; in commit mode they mirror what was persisted.
type Outcome struct {
	Results []ShiftResult
	Entries []model.PlanEntry
	Summary Summary
}

// Run executes the planner over the snapshot. It only fills gaps: existing
// assignments are never removed or replaced, and overstaffing, clearance,
// and double-booking conflicts are left for the conflict analyzer to keep
// surfacing.
func Run(in Input) *Outcome {
	minTier := in.Options.MinimumTier
	if minTier == "" {
		minTier = model.RecommendationAcceptable
	}

	// Working copies own the ledger: tentative assignments are appended to
	// these shifts so subsequent scoring sees them.
	working := make([]model.Shift, len(in.Shifts))
	for i, s := range in.Shifts {
		working[i] = s
		working[i].Assignments = append([]model.Assignment{}, s.Assignments...)
	}

	order := fillOrder(working, in.Options)

	outcome := &Outcome{Results: []ShiftResult{}, Entries: []model.PlanEntry{}}
	for _, idx := range order {
		target := &working[idx]

		staffed := len(target.ActiveAssignments())
		if staffed >= target.RequiredEmployees {
			outcome.Summary.ShiftsSkipped++
			continue
		}
		outcome.Summary.ShiftsConsidered++

		result := fillShift(target, working, in, minTier, outcome)
		outcome.Results = append(outcome.Results, result)

		switch result.Status {
		case StatusFilled:
			outcome.Summary.Filled++
		case StatusPartiallyFilled:
			outcome.Summary.PartiallyFilled++
		default:
			outcome.Summary.Unfilled++
		}
		outcome.Summary.Assignments += len(result.Assigned)
	}
	return outcome
}

// fillShift assigns candidates to one shift in descending score order until
// it is fully staffed or no eligible candidate at or above the floor remains
func fillShift(target *model.Shift, working []model.Shift, in Input, minTier model.Recommendation, outcome *Outcome) ShiftResult {
	result := ShiftResult{ShiftID: target.ID, Assigned: []CandidateOutcome{}}

	pool := eligiblePool(in.Pool, in.Absences, target, working)
	scores := scoring.ScoreCandidates(scoring.Input{
		Shift:        *target,
		Candidates:   pool,
		RosterShifts: working,
		Absences:     in.Absences,
		Limits:       in.Options.Limits,
	})

	needed := target.RequiredEmployees - len(target.ActiveAssignments())
	for _, score := range scores {
		if needed == 0 {
			break
		}
		// Scores are sorted descending, so the first candidate below the
		// floor ends the shift.
		if scoring.TierRank(score.Recommendation) < scoring.TierRank(minTier) {
			break
		}
		if score.HasWarning(model.WarningMissingQualifications) {
			continue
		}

		assignment := model.Assignment{
			ID:         uuid.New().String(),
			ShiftID:    target.ID,
			EmployeeID: score.EmployeeID,
			Status:     model.AssignmentAssigned,
		}

		persisted := false
		if !in.Options.Preview && in.Persist != nil {
			if err := in.Persist(assignment); err != nil {
				result.Error = err.Error()
				break
			}
			persisted = true
		}

		target.Assignments = append(target.Assignments, assignment)
		outcome.Entries = append(outcome.Entries, model.PlanEntry{
			ShiftID:         target.ID,
			EmployeeID:      score.EmployeeID,
			ResultingStatus: model.AssignmentAssigned,
		})
		result.Assigned = append(result.Assigned, CandidateOutcome{
			EmployeeID:     score.EmployeeID,
			Score:          score.Total,
			Recommendation: score.Recommendation,
			Persisted:      persisted,
		})
		needed--
	}

	switch {
	case needed == 0:
		result.Status = StatusFilled
	case len(result.Assigned) > 0:
		result.Status = StatusPartiallyFilled
	default:
		result.Status = StatusUnfilled
	}
	return result
}

// eligiblePool excludes employees already assigned to the shift (including
// tentative ledger entries), employees whose other assignments overlap the
// shift window (the planner surfaces existing double bookings but never
// creates new ones), and employees with an approved absence over the shift
// window. Employees with merely requested absences stay in the pool; the
// scorer flags them.
func eligiblePool(pool []model.Employee, absences []model.Absence, target *model.Shift, working []model.Shift) []model.Employee {
	end := timewindow.NormalizedEnd(target.Start, target.End)
	eligible := make([]model.Employee, 0, len(pool))
	for _, e := range pool {
		if target.HasEmployee(e.ID) {
			continue
		}
		if hasOverlappingAssignment(working, e.ID, target, end) {
			continue
		}
		if hasApprovedAbsenceOver(absences, e.ID, target.Start, end) {
			continue
		}
		eligible = append(eligible, e)
	}
	return eligible
}

func hasOverlappingAssignment(working []model.Shift, employeeID string, target *model.Shift, targetEnd time.Time) bool {
	for _, s := range working {
		if s.ID == target.ID || !s.HasEmployee(employeeID) {
			continue
		}
		sEnd := timewindow.NormalizedEnd(s.Start, s.End)
		if timewindow.Overlaps(s.Start, sEnd, target.Start, targetEnd) {
			return true
		}
	}
	return false
}

func hasApprovedAbsenceOver(absences []model.Absence, employeeID string, start, end time.Time) bool {
	for _, ab := range absences {
		if ab.EmployeeID != employeeID || ab.Status != model.AbsenceApproved {
			continue
		}
		if timewindow.Overlaps(start, end, ab.Start, ab.End) {
			return true
		}
	}
	return false
}

// fillOrder returns the working indices of shifts to fill, chronologically,
// restricted by the options' range and site filter
func fillOrder(working []model.Shift, opts Options) []int {
	var order []int
	for i, s := range working {
		if opts.SiteID != "" && s.SiteID != opts.SiteID {
			continue
		}
		if !opts.From.IsZero() && s.Start.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && !s.Start.Before(opts.To) {
			continue
		}
		order = append(order, i)
	}
	sort.Slice(order, func(a, b int) bool {
		si, sj := working[order[a]], working[order[b]]
		if si.Start.Equal(sj.Start) {
			return si.ID < sj.ID
		}
		return si.Start.Before(sj.Start)
	})
	return order
}
