package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOptionsDefaultRange(t *testing.T) {
	days, err := WeekdayOptions(DefaultPickerStart, DefaultPickerEnd, time.Sunday)
	require.NoError(t, err)

	require.NotEmpty(t, days)
	assert.Equal(t, day(t, "2025-11-09"), days[0])
	assert.Equal(t, day(t, "2027-01-03"), days[len(days)-1])
	assert.Len(t, days, 61)
	for i := 1; i < len(days); i++ {
		assert.Equal(t, time.Sunday, days[i].Weekday())
		assert.True(t, days[i].After(days[i-1]))
	}
}

func TestWeekdayOptionsSnapsStart(t *testing.T) {
	days, err := WeekdayOptions(day(t, "2025-01-01"), day(t, "2025-01-20"), time.Monday)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, day(t, "2025-01-06"), days[0])
	assert.Equal(t, day(t, "2025-01-20"), days[2])
}

func TestWeekdayOptionsEmptyRange(t *testing.T) {
	days, err := WeekdayOptions(day(t, "2025-01-06"), day(t, "2025-01-04"), time.Sunday)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestDefaultEntryDay(t *testing.T) {
	assert.Equal(t, day(t, "2025-01-12"), DefaultEntryDay(day(t, "2025-01-08"), time.Sunday))
	assert.Equal(t, day(t, "2025-01-12"), DefaultEntryDay(day(t, "2025-01-12"), time.Sunday))
}
