package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/guardwatch/roster/pkg/core/autofill"
	"github.com/guardwatch/roster/pkg/core/model"
)

// AutoFillStore combines the roster snapshot reads with assignment
// persistence for commit-mode runs
type AutoFillStore interface {
	RosterSnapshotStore
	InsertAssignment(ctx context.Context, assignment model.Assignment) error
}

// PlanAutoFill loads the roster around the requested range and runs the
// auto-fill planner over it. In commit mode each successful assignment is
// persisted through the store; a persistence failure is recorded on the
// affected shift's result and the run continues. Concurrent commit-mode runs
// over overlapping shifts are the caller's responsibility to serialize.
func PlanAutoFill(ctx context.Context, store AutoFillStore, logger *zap.Logger, opts autofill.Options) (*autofill.Outcome, error) {
	// Load a padded window so weekly-hours and consecutive-day projections
	// see the shifts bordering the fill range.
	loadFrom := opts.From.Add(-scoringContextWindow)
	loadTo := opts.To.Add(scoringContextWindow)

	shifts, err := store.GetShifts(ctx, loadFrom, loadTo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	absences, err := store.GetAbsences(ctx, loadFrom, loadTo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}

	pool, err := store.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	logger.Info("Starting auto-fill run",
		zap.Time("from", opts.From),
		zap.Time("to", opts.To),
		zap.Bool("preview", opts.Preview),
		zap.Int("shifts", len(shifts)),
		zap.Int("pool", len(pool)))

	start := time.Now()
	outcome := autofill.Run(autofill.Input{
		Shifts:   shifts,
		Pool:     pool,
		Absences: absences,
		Options:  opts,
		Persist: func(a model.Assignment) error {
			return store.InsertAssignment(ctx, a)
		},
	})

	logger.Info("Auto-fill run complete",
		zap.Bool("preview", opts.Preview),
		zap.Int("filled", outcome.Summary.Filled),
		zap.Int("partially_filled", outcome.Summary.PartiallyFilled),
		zap.Int("unfilled", outcome.Summary.Unfilled),
		zap.Int("assignments", outcome.Summary.Assignments),
		zap.Duration("elapsed", time.Since(start)))
	return outcome, nil
}
