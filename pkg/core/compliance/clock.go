// Package compliance implements the labor-compliance checks applied to
// clock events and to an employee's scheduled shift set. Every function is
// pure: "now" is always an explicit parameter and all roster state comes in
// as caller-supplied snapshots.
package compliance

import (
	"errors"
	"time"

	"github.com/guardwatch/roster/pkg/core/model"
)

// Warning thresholds. These are statutory-style constants, not per-call
// configuration.
const (
	MinRestHours           = 11.0
	LongShiftWarnHours     = 10.0
	VeryLongShiftWarnHours = 12.0
)

// ClockWarning is a language-neutral tag emitted alongside a clock event
type ClockWarning string

const (
	WarnRestPeriodLT11H ClockWarning = "WARN_REST_PERIOD_LT_11H"
	WarnShiftGT10H      ClockWarning = "WARN_SHIFT_GT_10H"
	WarnShiftGT12H      ClockWarning = "WARN_SHIFT_GT_12H"
)

// State errors returned by clock event evaluation. Callers surface these as
// user-facing failures rather than internal errors.
var (
	ErrDuplicateOpenEntry = errors.New("an open time entry already exists for this employee")
	ErrNoOpenEntry        = errors.New("no open time entry exists for this employee")
)

// ClockIn evaluates a clock-in for the employee against their existing time
// entries. It returns the new open entry (ID left empty for the caller to
// assign) and any rest-period warnings. Fails with ErrDuplicateOpenEntry if
// an open entry already exists.
func ClockIn(entries []model.TimeEntry, employeeID, shiftID string, at time.Time) (model.TimeEntry, []ClockWarning, error) {
	var lastEnd *time.Time
	for i := range entries {
		e := &entries[i]
		if e.EmployeeID != employeeID {
			continue
		}
		if e.EndTime == nil {
			return model.TimeEntry{}, nil, ErrDuplicateOpenEntry
		}
		if lastEnd == nil || e.EndTime.After(*lastEnd) {
			lastEnd = e.EndTime
		}
	}

	var warnings []ClockWarning
	if lastEnd != nil {
		gap := at.Sub(*lastEnd).Hours()
		if gap >= 0 && gap < MinRestHours {
			warnings = append(warnings, WarnRestPeriodLT11H)
		}
	}

	entry := model.TimeEntry{
		EmployeeID: employeeID,
		ShiftID:    shiftID,
		StartTime:  at,
	}
	return entry, warnings, nil
}

// ClockOut closes the employee's open time entry at the given instant and
// evaluates shift-duration warnings on the worked time (break deducted).
// The GT_10H and GT_12H warnings are independent thresholds and may fire
// together. Fails with ErrNoOpenEntry if no open entry exists.
func ClockOut(entries []model.TimeEntry, employeeID string, at time.Time, breakMinutes int) (model.TimeEntry, []ClockWarning, error) {
	var open *model.TimeEntry
	for i := range entries {
		e := &entries[i]
		if e.EmployeeID == employeeID && e.EndTime == nil {
			open = e
			break
		}
	}
	if open == nil {
		return model.TimeEntry{}, nil, ErrNoOpenEntry
	}

	closed := *open
	end := at
	closed.EndTime = &end
	closed.BreakMinutes = breakMinutes

	worked := at.Sub(closed.StartTime).Hours() - float64(breakMinutes)/60.0

	var warnings []ClockWarning
	if worked > LongShiftWarnHours {
		warnings = append(warnings, WarnShiftGT10H)
	}
	if worked > VeryLongShiftWarnHours {
		warnings = append(warnings, WarnShiftGT12H)
	}
	return closed, warnings, nil
}
