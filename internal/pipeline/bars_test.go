package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/revtrack/internal/model"
)

func TestWeekStartOf(t *testing.T) {
	assert.Equal(t, day(t, "2025-01-06"), WeekStartOf(day(t, "2025-01-12"), time.Monday))
	assert.Equal(t, day(t, "2025-01-06"), WeekStartOf(day(t, "2025-01-06"), time.Monday))
	assert.Equal(t, day(t, "2025-01-05"), WeekStartOf(day(t, "2025-01-11"), time.Sunday))
}

func TestWeeklyBars(t *testing.T) {
	entries := []model.Entry{
		entry(t, "a", "2025-01-12", 100), // Sunday, week of Mon 01-06
		entry(t, "b", "2025-01-06", 50),
		entry(t, "c", "2025-01-15", -20),
		entry(t, "d", "2024-06-01", 999), // outside the window
	}

	bars := WeeklyBars(entries, day(t, "2025-01-16"), 8)

	require.Len(t, bars, 8)
	assert.Equal(t, day(t, "2024-11-25"), bars[0].WeekStart)
	assert.Equal(t, "11/25", bars[0].Label)
	assert.Equal(t, day(t, "2025-01-13"), bars[7].WeekStart)
	assert.Equal(t, "1/13", bars[7].Label)
	assert.Equal(t, 150.0, bars[6].Amount)
	assert.Equal(t, -20.0, bars[7].Amount)

	total := 0.0
	for _, b := range bars {
		total += b.Amount
	}
	assert.Equal(t, 130.0, total)
}

func TestWeeklyBarsDefaultsWeeks(t *testing.T) {
	assert.Len(t, WeeklyBars(nil, day(t, "2025-01-16"), 0), DefaultBarWeeks)
}
