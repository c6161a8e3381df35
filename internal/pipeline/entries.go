package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/revtrack/internal/model"
)

// Total sums all entry amounts.
func Total(entries []model.Entry) float64 {
	total := 0.0
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

// SortNewestFirst returns a copy of entries ordered by date descending.
// Same-day entries are ordered by ID so the result is stable across calls.
func SortNewestFirst(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FilterRange returns entries dated within [from, to]. A zero bound is open.
func FilterRange(entries []model.Entry, from, to time.Time) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if !from.IsZero() && e.Date.Before(model.DayOf(from)) {
			continue
		}
		if !to.IsZero() && e.Date.After(model.DayOf(to)) {
			continue
		}
		out = append(out, e)
	}
	return out
}
