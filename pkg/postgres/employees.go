package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/guardwatch/roster/pkg/core/model"
)

// GetEmployees retrieves all employees with their qualifications,
// clearances, workload snapshot, and shift preferences loaded
func (d *DB) GetEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, qualifications, total_hours, night_shift_count,
		       weekend_shift_count, consecutive_days_worked, rest_days_count,
		       replacement_count
		FROM employee
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	index := make(map[string]int)
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Qualifications, &e.Workload.TotalHours,
			&e.Workload.NightShiftCount, &e.Workload.WeekendShiftCount,
			&e.Workload.ConsecutiveDaysWorked, &e.Workload.RestDaysCount,
			&e.Workload.ReplacementCount); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		index[e.ID] = len(employees)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	if len(employees) == 0 {
		return employees, nil
	}

	clearanceRows, err := d.pool.Query(ctx, `
		SELECT employee_id, site_id, status, valid_until, trained_at
		FROM object_clearance
		ORDER BY employee_id, site_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clearances: %w", err)
	}
	defer clearanceRows.Close()

	for clearanceRows.Next() {
		var employeeID string
		var c model.ObjectClearance
		var validUntil *time.Time
		if err := clearanceRows.Scan(&employeeID, &c.SiteID, &c.Status, &validUntil, &c.TrainedAt); err != nil {
			return nil, fmt.Errorf("failed to scan clearance: %w", err)
		}
		if validUntil != nil {
			c.ValidUntil = *validUntil
		}
		if i, ok := index[employeeID]; ok {
			employees[i].Clearances = append(employees[i].Clearances, c)
		}
	}
	if err := clearanceRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clearances: %w", err)
	}

	prefRows, err := d.pool.Query(ctx, `
		SELECT employee_id, shift_type, affinity
		FROM shift_preference
		ORDER BY employee_id, shift_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift preferences: %w", err)
	}
	defer prefRows.Close()

	for prefRows.Next() {
		var employeeID, shiftType string
		var affinity float64
		if err := prefRows.Scan(&employeeID, &shiftType, &affinity); err != nil {
			return nil, fmt.Errorf("failed to scan shift preference: %w", err)
		}
		i, ok := index[employeeID]
		if !ok {
			continue
		}
		if employees[i].Preferences == nil {
			employees[i].Preferences = &model.Preferences{ShiftAffinity: make(map[string]float64)}
		}
		employees[i].Preferences.ShiftAffinity[shiftType] = affinity
	}
	if err := prefRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift preferences: %w", err)
	}

	return employees, nil
}
