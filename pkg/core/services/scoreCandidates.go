package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/guardwatch/roster/pkg/core/compliance"
	"github.com/guardwatch/roster/pkg/core/model"
	"github.com/guardwatch/roster/pkg/core/scoring"
	"github.com/guardwatch/roster/pkg/core/timewindow"
)

// scoringContextWindow pads the roster context loaded around a target shift
// so rolling-week and consecutive-day projections see enough history
const scoringContextWindow = 8 * 24 * time.Hour

// ScoreCandidates loads the target shift from [from, to) and the employee
// pool, pre-filters the pool (already-assigned employees and approved
// absences are excluded, requested absences stay and get flagged), and
// returns the sorted scores.
func ScoreCandidates(ctx context.Context, store RosterSnapshotStore, logger *zap.Logger, shiftID string, from, to time.Time, limits compliance.Limits) ([]model.CandidateScore, error) {
	shifts, err := store.GetShifts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	var target *model.Shift
	for i := range shifts {
		if shifts[i].ID == shiftID {
			target = &shifts[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("shift %s not found", shiftID)
	}

	contextFrom := target.Start.Add(-scoringContextWindow)
	contextTo := target.Start.Add(scoringContextWindow)

	rosterShifts, err := store.GetShifts(ctx, contextFrom, contextTo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster context: %w", err)
	}

	absences, err := store.GetAbsences(ctx, contextFrom, contextTo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}

	employees, err := store.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	pool := filterCandidatePool(employees, absences, target)

	logger.Debug("Scoring candidates",
		zap.String("shift_id", shiftID),
		zap.Int("pool", len(pool)))

	scores := scoring.ScoreCandidates(scoring.Input{
		Shift:        *target,
		Candidates:   pool,
		RosterShifts: rosterShifts,
		Absences:     absences,
		Limits:       limits,
	})

	logger.Info("Candidate scoring complete",
		zap.String("shift_id", shiftID),
		zap.Int("candidates", len(scores)))
	return scores, nil
}

// filterCandidatePool drops employees already assigned to the shift and
// employees with an approved absence overlapping it
func filterCandidatePool(employees []model.Employee, absences []model.Absence, target *model.Shift) []model.Employee {
	end := timewindow.NormalizedEnd(target.Start, target.End)
	pool := make([]model.Employee, 0, len(employees))
	for _, e := range employees {
		if target.HasEmployee(e.ID) {
			continue
		}
		if employeeHasApprovedAbsence(absences, e.ID, target.Start, end) {
			continue
		}
		pool = append(pool, e)
	}
	return pool
}

func employeeHasApprovedAbsence(absences []model.Absence, employeeID string, start, end time.Time) bool {
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
