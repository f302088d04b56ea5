// Package db defines the store interfaces the service layer depends on.
// The postgres package implements all of them; tests substitute hand-written
// mocks.
package db

import (
	"context"
	"time"

	"github.com/guardwatch/roster/pkg/core/model"
)

// ShiftStore provides access to shifts and their assignments
type ShiftStore interface {
	// GetShifts returns shifts starting inside [from, to), with their
	// assignments loaded
	GetShifts(ctx context.Context, from, to time.Time) ([]model.Shift, error)
	InsertShifts(ctx context.Context, shifts []model.Shift) error
}

// AssignmentStore persists shift assignments
type AssignmentStore interface {
	InsertAssignment(ctx context.Context, assignment model.Assignment) error
}

// AbsenceStore provides access to absence records
type AbsenceStore interface {
	GetAbsences(ctx context.Context, from, to time.Time) ([]model.Absence, error)
}

// EmployeeStore provides employee snapshots with qualifications, clearances,
// workload, and preferences loaded
type EmployeeStore interface {
	GetEmployees(ctx context.Context) ([]model.Employee, error)
}

// TimeEntryStore provides access to clock-in/clock-out records
type TimeEntryStore interface {
	GetTimeEntries(ctx context.Context, employeeID string) ([]model.TimeEntry, error)
	InsertTimeEntry(ctx context.Context, entry model.TimeEntry) error
	// CloseTimeEntry updates the end time and break of an existing entry
	CloseTimeEntry(ctx context.Context, entry model.TimeEntry) error
}

// Database aggregates every store the CLI wires up
type Database interface {
	ShiftStore
	AssignmentStore
	AbsenceStore
	EmployeeStore
	TimeEntryStore
}
