// Package scoring computes weighted composite scores for candidate
// employees against a target shift. The scorer is a total function over its
// snapshot input: it never fails, and an empty candidate pool yields an
// empty score list. Scores are recomputed on every call because the
// workload and clearance inputs are caller-supplied snapshots.
package scoring

import (
	"sort"

	"github.com/guardwatch/roster/pkg/core/compliance"
	"github.com/guardwatch/roster/pkg/core/model"
	"github.com/guardwatch/roster/pkg/core/timewindow"
)

// Recommendation tier floors, evaluated in order
const (
	OptimalFloor    = 80.0
	GoodFloor       = 60.0
	AcceptableFloor = 40.0
)

const (
	// compliancePenalty is subtracted per projected violation (rest gap,
	// weekly hours, consecutive days), floored at 0
	compliancePenalty = 35.0

	// neutralAffinity is assumed when an employee has no recorded
	// preference for the shift type
	neutralAffinity = 50.0

	// mismatchThreshold flags a recorded affinity as a preference mismatch
	mismatchThreshold = 30.0
)

// Input is the snapshot the scorer works from. Candidates are expected to be
// pre-filtered by the caller to exclude employees already assigned to the
// shift and employees on approved absence overlapping it.
type Input struct {
	Shift        model.Shift
	Candidates   []model.Employee
	RosterShifts []model.Shift
	Absences     []model.Absence
	Limits       compliance.Limits
}

// ScoreCandidates scores every candidate for the target shift and returns
// the results sorted descending by total score, ties broken by ascending
// employee ID.
func ScoreCandidates(in Input) []model.CandidateScore {
	weights := WeightsFor(in.Shift.ClearanceRequired)

	poolAvgHours := 0.0
	if len(in.Candidates) > 0 {
		for _, e := range in.Candidates {
			poolAvgHours += e.Workload.TotalHours
		}
		poolAvgHours /= float64(len(in.Candidates))
	}

	scores := make([]model.CandidateScore, 0, len(in.Candidates))
	for i := range in.Candidates {
		scores = append(scores, scoreCandidate(&in.Candidates[i], in, weights, poolAvgHours))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Total != scores[j].Total {
			return scores[i].Total > scores[j].Total
		}
		return scores[i].EmployeeID < scores[j].EmployeeID
	})
	return scores
}

func scoreCandidate(e *model.Employee, in Input, weights Weights, poolAvgHours float64) model.CandidateScore {
	var warnings []model.CandidateWarning

	own := compliance.EmployeeShifts(in.RosterShifts, e.ID)

	breakdown := model.ScoreBreakdown{
		Clearance:  clearanceScore(e, in.Shift),
		Preference: preferenceScore(e, in.Shift, &warnings),
		Fairness:   fairnessScore(e, poolAvgHours),
		Workload:   workloadScore(e, in.Limits),
	}
	breakdown.Compliance = complianceScore(own, in.Shift, in.Limits, &warnings)

	if hasPendingAbsence(in.Absences, e.ID, in.Shift) {
		warnings = append(warnings, model.WarningPendingAbsenceRequest)
	}
	// Missing qualifications never lower the score; they attach a blocking
	// warning so the candidate stays visible but cannot be auto-assigned.
	if !e.HasQualifications(in.Shift.RequiredQualifications) {
		warnings = append(warnings, model.WarningMissingQualifications)
	}

	total := weights.Apply(breakdown.Clearance, breakdown.Compliance, breakdown.Preference, breakdown.Fairness, breakdown.Workload)

	return model.CandidateScore{
		EmployeeID:     e.ID,
		Total:          total,
		Breakdown:      breakdown,
		Recommendation: Recommend(total),
		Warnings:       warnings,
	}
}

// Recommend maps a composite score to its recommendation tier
func Recommend(total float64) model.Recommendation {
	switch {
	case total >= OptimalFloor:
		return model.RecommendationOptimal
	case total >= GoodFloor:
		return model.RecommendationGood
	case total >= AcceptableFloor:
		return model.RecommendationAcceptable
	default:
		return model.RecommendationNotRecommended
	}
}

// TierRank orders recommendation tiers for floor comparisons, higher is
// better
func TierRank(r model.Recommendation) int {
	switch r {
	case model.RecommendationOptimal:
		return 3
	case model.RecommendationGood:
		return 2
	case model.RecommendationAcceptable:
		return 1
	default:
		return 0
	}
}

func clearanceScore(e *model.Employee, shift model.Shift) float64 {
	if !shift.ClearanceRequired {
		return 0
	}
	c := e.ClearanceFor(shift.SiteID)
	if c == nil {
		return 0
	}
	switch c.Status {
	case model.ClearanceActive:
		if c.TrainedAt != nil {
			return 100
		}
		// Active on paper but training not recorded: scored like TRAINING
		return 50
	case model.ClearanceTraining:
		return 50
	default:
		return 0
	}
}

// complianceScore projects the roster-level checks as if the candidate held
// the target shift and deducts a fixed penalty per violation. The rest check
// clamps negative gaps (overlapping shifts) to zero, so an overlap counts as
// a rest violation here even though conflict analysis reports it as a double
// booking.
func complianceScore(own []model.Shift, target model.Shift, limits compliance.Limits, warnings *[]model.CandidateWarning) float64 {
	violations := 0

	if projectedRestViolation(own, target, limits.MinRestHours) {
		violations++
		*warnings = append(*warnings, model.WarningRestTime)
	}

	projected := append(append([]model.Shift{}, own...), target)
	if compliance.ScheduledWeeklyHours(projected, target) > limits.WeeklyHoursCap {
		violations++
		*warnings = append(*warnings, model.WarningOverworked)
	}

	if compliance.ConsecutiveShiftDays(projected, target.Start) > limits.ConsecutiveDaysCap {
		violations++
		*warnings = append(*warnings, model.WarningConsecutiveDays)
	}

	score := 100 - compliancePenalty*float64(violations)
	if score < 0 {
		score = 0
	}
	return score
}

// projectedRestViolation reports whether adding the target shift would leave
// the candidate with under the minimum rest against any of their existing
// shifts
func projectedRestViolation(own []model.Shift, target model.Shift, minRestHours float64) bool {
	tStart := target.Start
	tEnd := timewindow.NormalizedEnd(target.Start, target.End)

	for _, s := range own {
		if s.ID == target.ID {
			continue
		}
		sEnd := timewindow.NormalizedEnd(s.Start, s.End)

		if timewindow.Overlaps(s.Start, sEnd, tStart, tEnd) {
			return true
		}

		var gap float64
		if s.Start.Before(tStart) {
			gap = timewindow.RestGapHours(sEnd, tStart)
		} else {
			gap = timewindow.RestGapHours(tEnd, s.Start)
		}
		if gap < minRestHours {
			return true
		}
	}
	return false
}

func preferenceScore(e *model.Employee, shift model.Shift, warnings *[]model.CandidateWarning) float64 {
	if e.Preferences == nil {
		return neutralAffinity
	}
	affinity, ok := e.Preferences.ShiftAffinity[shift.ShiftType]
	if !ok {
		return neutralAffinity
	}
	if affinity < 0 {
		affinity = 0
	}
	if affinity > 100 {
		affinity = 100
	}
	if affinity < mismatchThreshold {
		*warnings = append(*warnings, model.WarningPreferenceMismatch)
	}
	return affinity
}

// fairnessScore favors employees who have absorbed fewer past replacements
// and carry a lower load than the candidate pool's average
func fairnessScore(e *model.Employee, poolAvgHours float64) float64 {
	replacementPenalty := 12.0 * float64(e.Workload.ReplacementCount)
	if replacementPenalty > 60 {
		replacementPenalty = 60
	}

	loadPenalty := 0.0
	if poolAvgHours > 0 {
		excess := (e.Workload.TotalHours - poolAvgHours) / poolAvgHours
		if excess > 0 {
			loadPenalty = 50 * excess
		}
	}

	penalty := replacementPenalty + loadPenalty
	if penalty > 100 {
		penalty = 100
	}
	return 100 - penalty
}

// workloadScore peaks for employees in a healthy 50-70% utilization band and
// penalizes both near-idle and near-saturated employees
func workloadScore(e *model.Employee, limits compliance.Limits) float64 {
	utilization := 0.0
	if limits.WeeklyHoursCap > 0 {
		utilization = e.Workload.TotalHours / limits.WeeklyHoursCap * 100
	}

	switch {
	case utilization < 50:
		return 40 + utilization/50*60
	case utilization <= 70:
		return 100
	default:
		score := 100 - (utilization-70)/30*80
		if score < 20 {
			score = 20
		}
		return score
	}
}

func hasPendingAbsence(absences []model.Absence, employeeID string, s model.Shift) bool {
	end := timewindow.NormalizedEnd(s.Start, s.End)
	for _, ab := range absences {
		if ab.EmployeeID != employeeID || ab.Status != model.AbsenceRequested {
			continue
		}
		if timewindow.Overlaps(s.Start, end, ab.Start, ab.End) {
			return true
		}
	}
	return false
}
