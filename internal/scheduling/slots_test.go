package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	slots, err := GenerateSlots("09:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slots)
}

func TestGenerateSlotsFirstSlotEqualsOpen(t *testing.T) {
	slots, err := GenerateSlots("08:15", "10:00")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "08:15", slots[0])
}

func TestGenerateSlotsStrictlyBeforeClose(t *testing.T) {
	// 10:00 is the close; the 10:00 slot must not be emitted.
	slots, err := GenerateSlots("09:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestGenerateSlotsIncreasingByGranularity(t *testing.T) {
	slots, err := GenerateSlots("10:00", "18:00")
	require.NoError(t, err)
	for i := 1; i < len(slots); i++ {
		prev, err := ParseTimeOfDay(slots[i-1])
		require.NoError(t, err)
		cur, err := ParseTimeOfDay(slots[i])
		require.NoError(t, err)
		assert.Equal(t, GranularityMinutes, cur-prev)
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	first, err := GenerateSlots("09:00", "17:00")
	require.NoError(t, err)
	second, err := GenerateSlots("09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateSlotsRejectsInvertedWindow(t *testing.T) {
	_, err := GenerateSlots("18:00", "09:00")
	assert.Error(t, err)

	_, err = GenerateSlots("09:00", "09:00")
	assert.Error(t, err)
}

func TestGenerateSlotsRejectsMalformedTime(t *testing.T) {
	_, err := GenerateSlots("9am", "17:00")
	assert.Error(t, err)
}

func TestParseFormatTimeOfDay(t *testing.T) {
	minutes, err := ParseTimeOfDay("13:45")
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, minutes)
	assert.Equal(t, "13:45", FormatTimeOfDay(minutes))
	assert.Equal(t, "09:05", FormatTimeOfDay(9*60+5))
}

func TestSlotStart(t *testing.T) {
	day := time.Date(2025, 6, 18, 0, 0, 0, 0, time.Local)
	start, err := SlotStart(day, "10:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 18, 10, 30, 0, 0, time.Local), start)
}
