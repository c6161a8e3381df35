package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/revtrack/internal/model"
)

func TestComputePacingExample(t *testing.T) {
	entries := []model.Entry{
		entry(t, "a", "2025-05-04", 100),
		entry(t, "b", "2025-05-18", 200),
	}

	p := ComputePacing(entries, 1000, day(t, "2025-06-11"), day(t, "2025-06-01"))

	assert.Equal(t, 300.0, p.TotalRevenue)
	assert.Equal(t, 10, p.DaysRemaining)
	assert.InDelta(t, 70.0, p.RequiredDaily, 1e-9)
	assert.Equal(t, 29, p.DaysPassed)
	assert.InDelta(t, 300.0/29, p.AvgDailyIncome, 1e-9)
	assert.Equal(t, 700.0, p.RemainingAmount)
}

func TestComputePacingNoEntries(t *testing.T) {
	p := ComputePacing(nil, 1000, day(t, "2025-06-11"), day(t, "2025-06-01"))

	assert.Equal(t, 0.0, p.AvgDailyIncome)
	assert.Equal(t, 1, p.DaysPassed)
	assert.InDelta(t, 100.0, p.RequiredDaily, 1e-9)
}

func TestComputePacingGoalMet(t *testing.T) {
	entries := []model.Entry{entry(t, "a", "2025-05-04", 1500)}
	p := ComputePacing(entries, 1000, day(t, "2025-06-11"), day(t, "2025-06-01"))

	assert.Equal(t, 0.0, p.RemainingAmount)
	assert.Equal(t, 0.0, p.RequiredDaily)
	assert.True(t, p.OnTrack())
}

func TestComputePacingPastTargetClampsToOneDay(t *testing.T) {
	entries := []model.Entry{entry(t, "a", "2025-05-04", 100)}

	for _, target := range []string{"2025-06-01", "2025-05-01"} {
		p := ComputePacing(entries, 1000, day(t, target), day(t, "2025-06-01"))
		assert.Equal(t, 1, p.DaysRemaining, target)
		assert.InDelta(t, 900.0, p.RequiredDaily, 1e-9, target)
	}
}

func TestComputePacingSameDay(t *testing.T) {
	entries := []model.Entry{entry(t, "a", "2025-06-01", 50)}
	p := ComputePacing(entries, 1000, day(t, "2025-06-11"), day(t, "2025-06-01"))
	assert.Equal(t, 1, p.DaysPassed)
	assert.Equal(t, 50.0, p.AvgDailyIncome)
}

func TestComputePacingNegativeTotal(t *testing.T) {
	entries := []model.Entry{
		entry(t, "a", "2025-05-31", 100),
		entry(t, "b", "2025-06-01", -300),
	}
	p := ComputePacing(entries, 1000, day(t, "2025-06-11"), day(t, "2025-06-01"))
	assert.Equal(t, -200.0, p.TotalRevenue)
	assert.Equal(t, -100.0, p.AvgDailyIncome)
	assert.Equal(t, 1200.0, p.RemainingAmount)
	assert.False(t, p.OnTrack())
}

func TestPacingForMatchesComputePacing(t *testing.T) {
	entries := randomEntries(3, 12)
	goal := model.GoalParameters{TargetAmount: 5000, TargetDate: day(t, "2025-12-30")}
	today := day(t, "2025-04-02")

	assert.Equal(t,
		ComputePacing(entries, goal.TargetAmount, goal.TargetDate, today),
		PacingFor(entries, goal, today))
	assert.Equal(t, PacingFor(entries, goal, today), PacingFor(entries, goal, today))
}
