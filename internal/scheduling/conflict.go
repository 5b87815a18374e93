package scheduling

import (
	"time"
)

// Interval is a half-open time range [Start, End). Using half-open intervals
// keeps back-to-back bookings from reading as conflicts.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the interval occupied by a booking starting at start
// with the given duration in minutes.
func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps reports whether the two half-open intervals intersect. The test is
// symmetric: a.Overlaps(b) == b.Overlaps(a).
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains reports whether other lies fully inside i.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// HasConflict reports whether the candidate interval overlaps any of the
// existing intervals.
func HasConflict(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}
