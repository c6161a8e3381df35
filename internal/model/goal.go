package model

import "time"

// GoalParameters is the user's revenue target.
type GoalParameters struct {
	TargetAmount float64
	TargetDate   time.Time
}

// PacingStats holds realized and required daily rates toward a goal.
type PacingStats struct {
	TotalRevenue    float64
	DaysPassed      int
	AvgDailyIncome  float64
	RemainingAmount float64
	DaysRemaining   int
	RequiredDaily   float64
}

// OnTrack reports whether the historical rate meets the required rate.
func (p PacingStats) OnTrack() bool {
	return p.AvgDailyIncome >= p.RequiredDaily
}

// GoalProgress is the progress bar model for a goal.
type GoalProgress struct {
	Current float64
	Target  float64
	Percent float64 // clamped to [0, 100]
	Markers []float64
}
