package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/guardwatch/roster/pkg/core/compliance"
	"github.com/guardwatch/roster/pkg/core/conflict"
	"github.com/guardwatch/roster/pkg/core/model"
)

// RosterSnapshotStore is the read access AnalyzeConflicts and its consumers
// need to assemble a roster snapshot
type RosterSnapshotStore interface {
	GetShifts(ctx context.Context, from, to time.Time) ([]model.Shift, error)
	GetAbsences(ctx context.Context, from, to time.Time) ([]model.Absence, error)
	GetEmployees(ctx context.Context) ([]model.Employee, error)
}

// AnalyzeConflicts loads the roster for [from, to) and runs conflict
// analysis over it
func AnalyzeConflicts(ctx context.Context, store RosterSnapshotStore, logger *zap.Logger, from, to, now time.Time, limits compliance.Limits) ([]model.Conflict, error) {
	snap, err := loadSnapshot(ctx, store, from, to)
	if err != nil {
		return nil, err
	}

	logger.Debug("Analyzing conflicts",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("shifts", len(snap.Shifts)))

	conflicts := conflict.Analyze(snap, conflict.Range{From: from, To: to}, now, limits)

	logger.Info("Conflict analysis complete",
		zap.Int("shifts", len(snap.Shifts)),
		zap.Int("conflicts", len(conflicts)))
	return conflicts, nil
}

// loadSnapshot assembles the immutable roster state shared by the analysis
// services
func loadSnapshot(ctx context.Context, store RosterSnapshotStore, from, to time.Time) (conflict.Snapshot, error) {
	shifts, err := store.GetShifts(ctx, from, to)
	if err != nil {
		return conflict.Snapshot{}, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	absences, err := store.GetAbsences(ctx, from, to)
	if err != nil {
		return conflict.Snapshot{}, fmt.Errorf("failed to fetch absences: %w", err)
	}

	employees, err := store.GetEmployees(ctx)
	if err != nil {
		return conflict.Snapshot{}, fmt.Errorf("failed to fetch employees: %w", err)
	}

	byID := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	return conflict.Snapshot{Shifts: shifts, Absences: absences, Employees: byID}, nil
}
