package pipeline

import (
	"time"

	"github.com/theirongolddev/revtrack/internal/model"
)

// ComputePacing compares the realized daily average since the first entry
// with the daily average still needed to reach targetAmount by targetDate.
// It never fails: elapsed and remaining day counts are floored at 1 and the
// remaining amount at 0, so an empty list or a past target still yields
// finite figures.
func ComputePacing(entries []model.Entry, targetAmount float64, targetDate, today time.Time) model.PacingStats {
	today = model.DayOf(today)

	total := 0.0
	first := today
	for i, e := range entries {
		total += e.Amount
		d := model.DayOf(e.Date)
		if i == 0 || d.Before(first) {
			first = d
		}
	}

	daysPassed := max(1, model.DaysBetween(first, today)+1)
	daysRemaining := max(1, model.DaysBetween(today, targetDate))
	remaining := max(0, targetAmount-total)

	return model.PacingStats{
		TotalRevenue:    total,
		DaysPassed:      daysPassed,
		AvgDailyIncome:  total / float64(daysPassed),
		RemainingAmount: remaining,
		DaysRemaining:   daysRemaining,
		RequiredDaily:   remaining / float64(daysRemaining),
	}
}

// PacingFor is ComputePacing with the goal passed as one value.
func PacingFor(entries []model.Entry, goal model.GoalParameters, today time.Time) model.PacingStats {
	return ComputePacing(entries, goal.TargetAmount, goal.TargetDate, today)
}
