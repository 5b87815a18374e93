package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 18, hour, min, 0, 0, time.Local)
}

func TestOverlapsBackToBackIsNotConflict(t *testing.T) {
	a := NewInterval(at(10, 0), 30)
	b := NewInterval(at(10, 30), 30)

	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestOverlapsOneMinuteIsConflict(t *testing.T) {
	a := NewInterval(at(10, 0), 31)
	b := NewInterval(at(10, 30), 30)

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestOverlapsSymmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", NewInterval(at(9, 0), 30), NewInterval(at(9, 0), 30), true},
		{"contained", NewInterval(at(9, 0), 120), NewInterval(at(9, 30), 30), true},
		{"partial", NewInterval(at(9, 0), 45), NewInterval(at(9, 30), 45), true},
		{"disjoint", NewInterval(at(9, 0), 30), NewInterval(at(11, 0), 30), false},
		{"adjacent", NewInterval(at(9, 0), 60), NewInterval(at(10, 0), 60), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []Interval{
		NewInterval(at(10, 0), 30),
		NewInterval(at(14, 0), 60),
	}

	assert.False(t, HasConflict(NewInterval(at(9, 0), 60), existing))
	assert.False(t, HasConflict(NewInterval(at(10, 30), 30), existing))
	assert.True(t, HasConflict(NewInterval(at(9, 45), 30), existing))
	assert.True(t, HasConflict(NewInterval(at(13, 30), 45), existing))
	assert.False(t, HasConflict(NewInterval(at(15, 0), 30), existing))
}

func TestHasConflictEmptyExisting(t *testing.T) {
	assert.False(t, HasConflict(NewInterval(at(10, 0), 30), nil))
}

func TestContains(t *testing.T) {
	window := Interval{Start: at(9, 0), End: at(12, 0)}

	assert.True(t, window.Contains(NewInterval(at(11, 30), 30)))
	assert.False(t, window.Contains(NewInterval(at(11, 30), 45)))
	assert.True(t, window.Contains(NewInterval(at(9, 0), 180)))
}
