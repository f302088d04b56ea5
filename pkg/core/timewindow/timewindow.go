// Package timewindow provides the interval arithmetic shared by the
// compliance, conflict, and scoring packages. All intervals are half-open:
// [start, end). Two intervals that merely touch at a boundary do not overlap.
package timewindow

import "time"

// HoursPerDay is used to normalize overnight shifts where end <= start
const HoursPerDay = 24.0

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DurationHours returns end - start in hours. An end at or before start is
// interpreted as crossing midnight and normalized by adding 24 hours.
func DurationHours(start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		hours += HoursPerDay
	}
	return hours
}

// RestGapHours returns nextStart - prevEnd in hours. The result is negative
// when the intervals overlap; callers clamp to zero for warning thresholds
// and surface the overlap itself as a double booking.
func RestGapHours(prevEnd, nextStart time.Time) float64 {
	return nextStart.Sub(prevEnd).Hours()
}

// NormalizedEnd returns the shift end adjusted for overnight shifts: when
// end <= start the end is pushed to the next day
func NormalizedEnd(start, end time.Time) time.Time {
	if !end.After(start) {
		return end.Add(HoursPerDay * time.Hour)
	}
	return end
}
