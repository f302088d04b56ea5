package postgres

import (
	"context"
	"fmt"

	"github.com/guardwatch/roster/pkg/core/model"
)

// InsertAssignment persists a single assignment. The planner calls this once
// per successful assignment in commit mode.
func (d *DB) InsertAssignment(ctx context.Context, a model.Assignment) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO assignment (id, shift_id, employee_id, status)
		VALUES ($1, $2, $3, $4)
	`, a.ID, a.ShiftID, a.EmployeeID, a.Status)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}
