package model

import "time"

// WeekBucket is the summed amount of all entries snapped to one week.
type WeekBucket struct {
	WeekStart time.Time
	Amount    float64
}

// CumulativePoint is one sample of the running total, one per week.
type CumulativePoint struct {
	Date  time.Time
	Value float64
}

// WeeklyBar is one bar of the recent-weeks chart.
type WeeklyBar struct {
	WeekStart time.Time
	Label     string // M/D
	Amount    float64
}
