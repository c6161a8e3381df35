// Package pipeline derives the cumulative weekly series, pacing rates and
// goal progress from a list of entries. Every function here is pure: inputs
// are never modified and results are freshly allocated.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/revtrack/internal/model"
)

// WeekOptions controls how the cumulative series is bucketed and truncated.
type WeekOptions struct {
	Boundary    time.Weekday // every week is keyed by this weekday
	DisplayDays int          // trailing span kept in the output; <= 0 keeps all
}

// DefaultWeekOptions buckets on Sundays and shows the last ten weeks.
var DefaultWeekOptions = WeekOptions{Boundary: time.Sunday, DisplayDays: 70}

// SnapToWeekday moves day forward to the next occurrence of boundary.
// A day already on boundary is returned unchanged.
func SnapToWeekday(day time.Time, boundary time.Weekday) time.Time {
	d := model.DayOf(day)
	diff := (int(boundary) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, diff)
}

// BucketWeeks sums entry amounts per snapped week, ordered by week.
func BucketWeeks(entries []model.Entry, boundary time.Weekday) []model.WeekBucket {
	sums := bucketSums(entries, boundary)

	buckets := make([]model.WeekBucket, 0, len(sums))
	for key, amount := range sums {
		start, _ := time.Parse(model.DateLayout, key)
		buckets = append(buckets, model.WeekBucket{WeekStart: start, Amount: amount})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].WeekStart.Before(buckets[j].WeekStart)
	})
	return buckets
}

func bucketSums(entries []model.Entry, boundary time.Weekday) map[string]float64 {
	sums := make(map[string]float64)
	for _, e := range entries {
		sums[model.FormatDay(SnapToWeekday(e.Date, boundary))] += e.Amount
	}
	return sums
}

// Aggregate returns the cumulative weekly series using DefaultWeekOptions.
func Aggregate(entries []model.Entry, today time.Time) []model.CumulativePoint {
	return AggregateWith(entries, today, DefaultWeekOptions)
}

// AggregateWith returns one point per week from the first entry's week up to
// the week containing max(latest entry, today), with zero-activity weeks
// carrying the running total forward. Only the trailing DisplayDays are
// returned, but the running total always starts at the earliest week.
func AggregateWith(entries []model.Entry, today time.Time, opts WeekOptions) []model.CumulativePoint {
	if len(entries) == 0 {
		return nil
	}

	earliest := model.DayOf(entries[0].Date)
	latest := earliest
	for _, e := range entries[1:] {
		d := model.DayOf(e.Date)
		if d.Before(earliest) {
			earliest = d
		}
		if d.After(latest) {
			latest = d
		}
	}
	if t := model.DayOf(today); t.After(latest) {
		latest = t
	}

	sums := bucketSums(entries, opts.Boundary)
	start := SnapToWeekday(earliest, opts.Boundary)
	end := SnapToWeekday(latest, opts.Boundary)

	displayFrom := start
	if opts.DisplayDays > 0 {
		if cut := end.AddDate(0, 0, -opts.DisplayDays); cut.After(displayFrom) {
			displayFrom = cut
		}
	}

	points := make([]model.CumulativePoint, 0, model.DaysBetween(displayFrom, end)/7+1)
	running := 0.0
	for week := start; !week.After(end); week = week.AddDate(0, 0, 7) {
		running += sums[model.FormatDay(week)]
		if week.Before(displayFrom) {
			continue
		}
		points = append(points, model.CumulativePoint{Date: week, Value: running})
	}
	return points
}
