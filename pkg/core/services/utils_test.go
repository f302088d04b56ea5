package services

import (
	"context"
	"time"

	"github.com/guardwatch/roster/pkg/core/model"
)

func testTime(day, hour int) time.Time {
	return time.Date(2025, 9, day, hour, 0, 0, 0, time.UTC)
}

func testShift(id string, day, required int, employeeIDs ...string) model.Shift {
	s := model.Shift{
		ID:                id,
		SiteID:            "site-1",
		Start:             testTime(day, 8),
		End:               testTime(day, 16),
		RequiredEmployees: required,
		ShiftType:         "DAY",
		Status:            "PLANNED",
	}
	for _, empID := range employeeIDs {
		s.Assignments = append(s.Assignments, model.Assignment{
			ID: "a-" + id + "-" + empID, ShiftID: id, EmployeeID: empID, Status: model.AssignmentAssigned,
		})
	}
	return s
}

// mockRosterStore implements RosterSnapshotStore, AutoFillStore, and
// db.ShiftStore for testing
type mockRosterStore struct {
	shifts    []model.Shift
	absences  []model.Absence
	employees []model.Employee

	insertedShifts      []model.Shift
	insertedAssignments []model.Assignment

	getShiftsErr        error
	getAbsencesErr      error
	getEmployeesErr     error
	insertShiftsErr     error
	insertAssignmentErr error
}

func (m *mockRosterStore) GetShifts(ctx context.Context, from, to time.Time) ([]model.Shift, error) {
	if m.getShiftsErr != nil {
		return nil, m.getShiftsErr
	}
	return m.shifts, nil
}

func (m *mockRosterStore) GetAbsences(ctx context.Context, from, to time.Time) ([]model.Absence, error) {
	if m.getAbsencesErr != nil {
		return nil, m.getAbsencesErr
	}
	return m.absences, nil
}

func (m *mockRosterStore) GetEmployees(ctx context.Context) ([]model.Employee, error) {
	if m.getEmployeesErr != nil {
		return nil, m.getEmployeesErr
	}
	return m.employees, nil
}

func (m *mockRosterStore) InsertShifts(ctx context.Context, shifts []model.Shift) error {
	if m.insertShiftsErr != nil {
		return m.insertShiftsErr
	}
	m.insertedShifts = append(m.insertedShifts, shifts...)
	return nil
}

func (m *mockRosterStore) InsertAssignment(ctx context.Context, assignment model.Assignment) error {
	if m.insertAssignmentErr != nil {
		return m.insertAssignmentErr
	}
	m.insertedAssignments = append(m.insertedAssignments, assignment)
	return nil
}

// mockTimeEntryStore implements db.TimeEntryStore for testing
type mockTimeEntryStore struct {
	entries []model.TimeEntry

	inserted []model.TimeEntry
	closed   []model.TimeEntry

	getErr    error
	insertErr error
	closeErr  error
}

func (m *mockTimeEntryStore) GetTimeEntries(ctx context.Context, employeeID string) ([]model.TimeEntry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var own []model.TimeEntry
	for _, e := range m.entries {
		if e.EmployeeID == employeeID {
			own = append(own, e)
		}
	}
	return own, nil
}

func (m *mockTimeEntryStore) InsertTimeEntry(ctx context.Context, entry model.TimeEntry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, entry)
	return nil
}

func (m *mockTimeEntryStore) CloseTimeEntry(ctx context.Context, entry model.TimeEntry) error {
	if m.closeErr != nil {
		return m.closeErr
	}
	m.closed = append(m.closed, entry)
	return nil
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

// mockMailer implements Mailer for testing
type mockMailer struct {
	sent    []sentEmail
	sendErr error
}

func (m *mockMailer) SendEmail(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}
