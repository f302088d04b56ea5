package postgres

import (
	"context"
	"fmt"

	"github.com/guardwatch/roster/pkg/core/model"
)

// GetTimeEntries retrieves all time entries for one employee
func (d *DB) GetTimeEntries(ctx context.Context, employeeID string) ([]model.TimeEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, employee_id, shift_id, start_time, end_time, break_minutes
		FROM time_entry
		WHERE employee_id = $1
		ORDER BY start_time, id
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []model.TimeEntry
	for rows.Next() {
		var e model.TimeEntry
		var shiftID *string
		if err := rows.Scan(&e.ID, &e.EmployeeID, &shiftID, &e.StartTime, &e.EndTime, &e.BreakMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		if shiftID != nil {
			e.ShiftID = *shiftID
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entries: %w", err)
	}
	return entries, nil
}

// InsertTimeEntry persists a new open time entry
func (d *DB) InsertTimeEntry(ctx context.Context, e model.TimeEntry) error {
	var shiftID *string
	if e.ShiftID != "" {
		shiftID = &e.ShiftID
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO time_entry (id, employee_id, shift_id, start_time, end_time, break_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.EmployeeID, shiftID, e.StartTime, e.EndTime, e.BreakMinutes)
	if err != nil {
		return fmt.Errorf("failed to insert time entry: %w", err)
	}
	return nil
}

// CloseTimeEntry records the end time and break of an existing entry
func (d *DB) CloseTimeEntry(ctx context.Context, e model.TimeEntry) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE time_entry
		SET end_time = $2, break_minutes = $3
		WHERE id = $1
	`, e.ID, e.EndTime, e.BreakMinutes)
	if err != nil {
		return fmt.Errorf("failed to close time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("time entry %s not found", e.ID)
	}
	return nil
}
