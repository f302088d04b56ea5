package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/guardwatch/roster/internal/config"
	"github.com/guardwatch/roster/pkg/core/model"
	"github.com/guardwatch/roster/pkg/db"
)

// DefineRoster expands the configured recurring shift patterns over
// [from, to) into concrete shift records and inserts them. It returns the
// created shifts in chronological order of creation per pattern.
func DefineRoster(ctx context.Context, store db.ShiftStore, logger *zap.Logger, patterns []config.ShiftPattern, from, to time.Time) ([]model.Shift, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("roster range end must be after start")
	}

	logger.Debug("Defining roster",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("patterns", len(patterns)))

	var shifts []model.Shift
	for i, pattern := range patterns {
		expanded, err := expandPattern(pattern, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to expand shiftPatterns[%d]: %w", i, err)
		}
		shifts = append(shifts, expanded...)
	}

	if err := store.InsertShifts(ctx, shifts); err != nil {
		return nil, fmt.Errorf("failed to insert shifts: %w", err)
	}

	logger.Info("Roster defined",
		zap.Int("patterns", len(patterns)),
		zap.Int("shifts", len(shifts)))
	return shifts, nil
}

// expandPattern turns one recurring pattern into concrete shifts whose start
// falls inside [from, to)
func expandPattern(pattern config.ShiftPattern, from, to time.Time) ([]model.Shift, error) {
	rr, err := rrule.StrToRRule(pattern.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule: %w", err)
	}
	rr.DTStart(startOfDayUTC(from))

	clock, err := time.Parse("15:04", pattern.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", pattern.StartTime, err)
	}

	shiftType := pattern.ShiftType
	if shiftType == "" {
		shiftType = "DAY"
	}

	var shifts []model.Shift
	for _, day := range rr.Between(startOfDayUTC(from), to, true) {
		start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
		if start.Before(from) || !start.Before(to) {
			continue
		}
		shifts = append(shifts, model.Shift{
			ID:                     uuid.New().String(),
			SiteID:                 pattern.SiteID,
			Start:                  start,
			End:                    start.Add(time.Duration(pattern.DurationHours * float64(time.Hour))),
			RequiredEmployees:      pattern.RequiredEmployees,
			RequiredQualifications: pattern.RequiredQualifications,
			ClearanceRequired:      pattern.ClearanceRequired,
			ShiftType:              shiftType,
			Status:                 "PLANNED",
		})
	}
	return shifts, nil
}

func startOfDayUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
