package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/guardwatch/roster/pkg/core/model"
)

// GetShifts retrieves shifts starting inside [from, to) with their
// assignments loaded
func (d *DB) GetShifts(ctx context.Context, from, to time.Time) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, site_id, start_time, end_time, required_employees,
		       required_qualifications, clearance_required, shift_type, status
		FROM shift
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	index := make(map[string]int)
	for rows.Next() {
		var s model.Shift
		if err := rows.Scan(&s.ID, &s.SiteID, &s.Start, &s.End, &s.RequiredEmployees,
			&s.RequiredQualifications, &s.ClearanceRequired, &s.ShiftType, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		index[s.ID] = len(shifts)
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	if len(shifts) == 0 {
		return shifts, nil
	}

	assignmentRows, err := d.pool.Query(ctx, `
		SELECT a.id, a.shift_id, a.employee_id, a.status
		FROM assignment a
		JOIN shift s ON s.id = a.shift_id
		WHERE s.start_time >= $1 AND s.start_time < $2
		ORDER BY a.shift_id, a.id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer assignmentRows.Close()

	for assignmentRows.Next() {
		var a model.Assignment
		if err := assignmentRows.Scan(&a.ID, &a.ShiftID, &a.EmployeeID, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if i, ok := index[a.ShiftID]; ok {
			shifts[i].Assignments = append(shifts[i].Assignments, a)
		}
	}
	if err := assignmentRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return shifts, nil
}

// InsertShifts inserts shift records in a single transaction
func (d *DB) InsertShifts(ctx context.Context, shifts []model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range shifts {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift (id, site_id, start_time, end_time, required_employees,
			                   required_qualifications, clearance_required, shift_type, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, s.ID, s.SiteID, s.Start, s.End, s.RequiredEmployees,
			s.RequiredQualifications, s.ClearanceRequired, s.ShiftType, s.Status)
		if err != nil {
			return fmt.Errorf("failed to insert shift: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
