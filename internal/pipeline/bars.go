package pipeline

import (
	"fmt"
	"time"

	"github.com/theirongolddev/revtrack/internal/model"
)

// DefaultBarWeeks is how many weeks the recent-weeks chart shows.
const DefaultBarWeeks = 8

// WeekStartOf returns the first day of the week containing day, for weeks
// that begin on start.
func WeekStartOf(day time.Time, start time.Weekday) time.Time {
	d := model.DayOf(day)
	diff := (int(d.Weekday()) - int(start) + 7) % 7
	return d.AddDate(0, 0, -diff)
}

// WeeklyBars sums entries into Monday-started weeks and returns the last
// `weeks` weeks up to the current one, oldest first, zero-filled. Entries
// outside that span are ignored.
func WeeklyBars(entries []model.Entry, today time.Time, weeks int) []model.WeeklyBar {
	if weeks <= 0 {
		weeks = DefaultBarWeeks
	}

	sums := make(map[string]float64)
	for _, e := range entries {
		sums[model.FormatDay(WeekStartOf(e.Date, time.Monday))] += e.Amount
	}

	current := WeekStartOf(today, time.Monday)
	bars := make([]model.WeeklyBar, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		ws := current.AddDate(0, 0, -7*i)
		bars = append(bars, model.WeeklyBar{
			WeekStart: ws,
			Label:     fmt.Sprintf("%d/%d", int(ws.Month()), ws.Day()),
			Amount:    sums[model.FormatDay(ws)],
		})
	}
	return bars
}
