package model

import "time"

// ClearanceStatus is the lifecycle state of an employee's site clearance
type ClearanceStatus string

const (
	ClearanceActive    ClearanceStatus = "ACTIVE"
	ClearanceExpired   ClearanceStatus = "EXPIRED"
	ClearanceRevoked   ClearanceStatus = "REVOKED"
	ClearanceSuspended ClearanceStatus = "SUSPENDED"
	ClearanceTraining  ClearanceStatus = "TRAINING"
)

// AssignmentStatus is the lifecycle state of a shift assignment
type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "ASSIGNED"
	AssignmentConfirmed AssignmentStatus = "CONFIRMED"
	AssignmentStarted   AssignmentStatus = "STARTED"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
	AssignmentCancelled AssignmentStatus = "CANCELLED"
)

// AbsenceType classifies an absence
type AbsenceType string

const (
	AbsenceVacation     AbsenceType = "VACATION"
	AbsenceSickness     AbsenceType = "SICKNESS"
	AbsenceSpecialLeave AbsenceType = "SPECIAL_LEAVE"
	AbsenceUnpaid       AbsenceType = "UNPAID"
)

// AbsenceStatus is the approval state of an absence
type AbsenceStatus string

const (
	AbsenceRequested AbsenceStatus = "REQUESTED"
	AbsenceApproved  AbsenceStatus = "APPROVED"
	AbsenceRejected  AbsenceStatus = "REJECTED"
	AbsenceCancelled AbsenceStatus = "CANCELLED"
)

// ObjectClearance is an employee's authorization record for a specific site
type ObjectClearance struct {
	SiteID     string
	Status     ClearanceStatus
	ValidUntil time.Time // zero value means no expiry recorded
	TrainedAt  *time.Time
}

// Workload is a snapshot of an employee's load over the scoring period
type Workload struct {
	TotalHours            float64
	NightShiftCount       int
	WeekendShiftCount     int
	ConsecutiveDaysWorked int
	RestDaysCount         int
	ReplacementCount      int
}

// DateRange is a closed interval of dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Preferences holds an employee's optional scheduling preferences
type Preferences struct {
	// ShiftAffinity maps shift type (e.g. "DAY", "NIGHT", "WEEKEND") to an
	// affinity score on a 0-100 scale
	ShiftAffinity map[string]float64
	BlackoutDates []DateRange
}

// Employee is a read-only snapshot of a guard, valid for one analysis call
type Employee struct {
	ID             string
	Qualifications []string
	Clearances     []ObjectClearance
	Workload       Workload
	Preferences    *Preferences
}

// HasQualifications reports whether the employee's qualification set
// supersets the required set
func (e *Employee) HasQualifications(required []string) bool {
	for _, req := range required {
		found := false
		for _, q := range e.Qualifications {
			if q == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ClearanceFor returns the employee's clearance record for the given site,
// preferring an ACTIVE record when the employee holds several. Returns nil
// if no record exists for the site.
func (e *Employee) ClearanceFor(siteID string) *ObjectClearance {
	var found *ObjectClearance
	for i := range e.Clearances {
		c := &e.Clearances[i]
		if c.SiteID != siteID {
			continue
		}
		if c.Status == ClearanceActive {
			return c
		}
		if found == nil {
			found = c
		}
	}
	return found
}

// Shift is a single guard shift at a site
type Shift struct {
	ID                     string
	SiteID                 string
	Start                  time.Time
	End                    time.Time // may be <= Start to denote an overnight shift
	RequiredEmployees      int
	RequiredQualifications []string
	// ClearanceRequired indicates the site demands an object clearance;
	// it selects the scoring weight table
	ClearanceRequired bool
	// ShiftType matches the keys of Preferences.ShiftAffinity
	ShiftType   string
	Status      string
	Assignments []Assignment
}

// ActiveAssignments returns the non-cancelled assignments on this shift
func (s *Shift) ActiveAssignments() []Assignment {
	active := make([]Assignment, 0, len(s.Assignments))
	for _, a := range s.Assignments {
		if a.Status != AssignmentCancelled {
			active = append(active, a)
		}
	}
	return active
}

// HasEmployee reports whether the employee holds an active assignment on
// this shift
func (s *Shift) HasEmployee(employeeID string) bool {
	for _, a := range s.Assignments {
		if a.EmployeeID == employeeID && a.Status != AssignmentCancelled {
			return true
		}
	}
	return false
}

// Assignment links one employee to one shift
type Assignment struct {
	ID         string
	ShiftID    string
	EmployeeID string
	Status     AssignmentStatus
}

// Absence is a requested or granted leave period for an employee
type Absence struct {
	ID         string
	EmployeeID string
	Type       AbsenceType
	Status     AbsenceStatus
	Start      time.Time
	End        time.Time
}

// TimeEntry is a clock-in/clock-out record. EndTime is nil while the entry
// is open; at most one open entry exists per employee.
type TimeEntry struct {
	ID           string
	EmployeeID   string
	ShiftID      string
	StartTime    time.Time
	EndTime      *time.Time
	BreakMinutes int
}

// Severity ranks how urgent a conflict is
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// ConflictType identifies the kind of roster conflict detected
type ConflictType string

const (
	ConflictUnassigned              ConflictType = "UNASSIGNED"
	ConflictUnderstaffed            ConflictType = "UNDERSTAFFED"
	ConflictOverstaffed             ConflictType = "OVERSTAFFED"
	ConflictNoClearance             ConflictType = "NO_CLEARANCE"
	ConflictMissingQualifications   ConflictType = "MISSING_QUALIFICATIONS"
	ConflictDoubleBooking           ConflictType = "DOUBLE_BOOKING"
	ConflictRestTimeViolation       ConflictType = "REST_TIME_VIOLATION"
	ConflictWeeklyHoursExceeded     ConflictType = "WEEKLY_HOURS_EXCEEDED"
	ConflictConsecutiveDaysExceeded ConflictType = "CONSECUTIVE_DAYS_EXCEEDED"
)

// Conflict is a single detected roster problem. Produced by analysis, never
// persisted by the core.
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	ShiftID     string
	Description string
	EmployeeIDs []string
}

// Recommendation buckets a candidate's composite score
type Recommendation string

const (
	RecommendationOptimal        Recommendation = "OPTIMAL"
	RecommendationGood           Recommendation = "GOOD"
	RecommendationAcceptable     Recommendation = "ACCEPTABLE"
	RecommendationNotRecommended Recommendation = "NOT_RECOMMENDED"
)

// CandidateWarning flags a concern attached to a candidate's score
type CandidateWarning string

const (
	WarningRestTime              CandidateWarning = "REST_TIME"
	WarningOverworked            CandidateWarning = "OVERWORKED"
	WarningConsecutiveDays       CandidateWarning = "CONSECUTIVE_DAYS"
	WarningPreferenceMismatch    CandidateWarning = "PREFERENCE_MISMATCH"
	WarningPendingAbsenceRequest CandidateWarning = "PENDING_ABSENCE_REQUEST"
	// WarningMissingQualifications is blocking: the candidate stays visible
	// in score output but must not be auto-assigned
	WarningMissingQualifications CandidateWarning = "MISSING_QUALIFICATIONS"
)

// ScoreBreakdown holds the five 0-100 sub-scores behind a composite score
type ScoreBreakdown struct {
	Clearance  float64
	Compliance float64
	Preference float64
	Fairness   float64
	Workload   float64
}

// CandidateScore is the scorer's verdict on one candidate for one shift
type CandidateScore struct {
	EmployeeID     string
	Total          float64
	Breakdown      ScoreBreakdown
	Recommendation Recommendation
	Warnings       []CandidateWarning
}

// HasWarning reports whether the given warning is attached to this score
func (c *CandidateScore) HasWarning(w CandidateWarning) bool {
	for _, have := range c.Warnings {
		if have == w {
			return true
		}
	}
	return false
}

// PlanEntry is one tentative assignment produced by the auto-fill planner
type PlanEntry struct {
	ShiftID         string
	EmployeeID      string
	ResultingStatus AssignmentStatus
}
