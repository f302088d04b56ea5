package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/guardwatch/roster/pkg/core/model"
)

// GetAbsences retrieves absences overlapping [from, to)
func (d *DB) GetAbsences(ctx context.Context, from, to time.Time) ([]model.Absence, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, employee_id, absence_type, status, start_time, end_time
		FROM absence
		WHERE start_time < $2 AND end_time > $1
		ORDER BY start_time, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var absences []model.Absence
	for rows.Next() {
		var a model.Absence
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Type, &a.Status, &a.Start, &a.End); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absences: %w", err)
	}
	return absences, nil
}
