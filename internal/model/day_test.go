package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay(" 2025-01-05 ")
	require.NoError(t, err)
	assert.Equal(t, Day(2025, time.January, 5), d)
	assert.Equal(t, time.Sunday, d.Weekday())

	_, err = ParseDay("01/05/2025")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestDayOfIgnoresLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	late := time.Date(2025, time.March, 9, 23, 30, 0, 0, loc)
	assert.Equal(t, Day(2025, time.March, 9), DayOf(late))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 10, DaysBetween(Day(2025, 6, 1), Day(2025, 6, 11)))
	assert.Equal(t, -3, DaysBetween(Day(2025, 6, 4), Day(2025, 6, 1)))
	assert.Equal(t, 0, DaysBetween(Day(2025, 6, 1), Day(2025, 6, 1)))
	// Spans the US DST change.
	assert.Equal(t, 7, DaysBetween(Day(2025, 3, 6), Day(2025, 3, 13)))
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{
		"sunday": time.Sunday,
		"Mon":    time.Monday,
		" SAT ":  time.Saturday,
		"thu":    time.Thursday,
	} {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeekday("someday")
	require.Error(t, err)
}
