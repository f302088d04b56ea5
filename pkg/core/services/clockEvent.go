package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/guardwatch/roster/pkg/core/compliance"
	"github.com/guardwatch/roster/pkg/core/model"
	"github.com/guardwatch/roster/pkg/db"
)

// ClockEventType selects which clock event to evaluate
type ClockEventType string

const (
	ClockInEvent  ClockEventType = "CLOCK_IN"
	ClockOutEvent ClockEventType = "CLOCK_OUT"
)

// ClockEventResult is the evaluated and persisted outcome of a clock event
type ClockEventResult struct {
	Entry    model.TimeEntry
	Warnings []compliance.ClockWarning
}

// EvaluateClockEvent evaluates a clock-in or clock-out for an employee and
// persists the resulting time entry. State errors
// (compliance.ErrDuplicateOpenEntry, compliance.ErrNoOpenEntry) pass through
// for the caller to surface to the end user.
func EvaluateClockEvent(ctx context.Context, store db.TimeEntryStore, logger *zap.Logger, employeeID, shiftID string, event ClockEventType, at time.Time, breakMinutes int) (*ClockEventResult, error) {
	if breakMinutes < 0 {
		return nil, fmt.Errorf("break minutes must not be negative, got %d", breakMinutes)
	}

	logger.Debug("Evaluating clock event",
		zap.String("employee_id", employeeID),
		zap.String("event", string(event)),
		zap.Time("at", at))

	entries, err := store.GetTimeEntries(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time entries: %w", err)
	}

	switch event {
	case ClockInEvent:
		entry, warnings, err := compliance.ClockIn(entries, employeeID, shiftID, at)
		if err != nil {
			return nil, err
		}
		entry.ID = uuid.New().String()
		if err := store.InsertTimeEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to insert time entry: %w", err)
		}
		logger.Info("Employee clocked in",
			zap.String("employee_id", employeeID),
			zap.String("entry_id", entry.ID),
			zap.Int("warnings", len(warnings)))
		return &ClockEventResult{Entry: entry, Warnings: warnings}, nil

	case ClockOutEvent:
		entry, warnings, err := compliance.ClockOut(entries, employeeID, at, breakMinutes)
		if err != nil {
			return nil, err
		}
		if err := store.CloseTimeEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to close time entry: %w", err)
		}
		logger.Info("Employee clocked out",
			zap.String("employee_id", employeeID),
			zap.String("entry_id", entry.ID),
			zap.Int("warnings", len(warnings)))
		return &ClockEventResult{Entry: entry, Warnings: warnings}, nil

	default:
		return nil, fmt.Errorf("unknown clock event type %q", event)
	}
}
