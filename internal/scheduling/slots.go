package scheduling

import (
	"fmt"
	"time"
)

// GranularityMinutes is the fixed spacing between candidate slot starts.
const GranularityMinutes = 30

// ParseTimeOfDay parses an "HH:MM" wall-clock string into minutes since
// midnight.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatTimeOfDay renders minutes since midnight as "HH:MM".
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateSlots returns candidate slot start times between openTime and
// closeTime ("HH:MM"), stepping by the fixed granularity. The window is
// half-open: a slot is emitted while its start is strictly before closeTime.
// Whether a full service duration fits before close is the caller's concern.
func GenerateSlots(openTime, closeTime string) ([]string, error) {
	open, err := ParseTimeOfDay(openTime)
	if err != nil {
		return nil, err
	}
	close, err := ParseTimeOfDay(closeTime)
	if err != nil {
		return nil, err
	}
	if open >= close {
		return nil, fmt.Errorf("open time %s must be before close time %s", openTime, closeTime)
	}

	var slots []string
	for t := open; t < close; t += GranularityMinutes {
		slots = append(slots, FormatTimeOfDay(t))
	}
	return slots, nil
}

// SlotStart anchors an "HH:MM" slot on the given calendar day in the local
// time zone.
func SlotStart(day time.Time, slot string) (time.Time, error) {
	minutes, err := ParseTimeOfDay(slot)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, day.Location()), nil
}
