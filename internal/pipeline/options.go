package pipeline

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/theirongolddev/revtrack/internal/model"
)

// Default date picker range for new entries.
var (
	DefaultPickerStart = model.Day(2025, time.November, 9)
	DefaultPickerEnd   = model.Day(2027, time.January, 3)
)

var rruleWeekdays = [...]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// WeekdayOptions lists every occurrence of weekday in [start, end], ascending.
func WeekdayOptions(start, end time.Time, weekday time.Weekday) ([]time.Time, error) {
	first := SnapToWeekday(start, weekday)
	end = model.DayOf(end)
	if first.After(end) {
		return nil, nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   first,
		Until:     end,
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
	})
	if err != nil {
		return nil, fmt.Errorf("building %s recurrence: %w", weekday, err)
	}

	days := r.All()
	for i, d := range days {
		days[i] = model.DayOf(d)
	}
	return days, nil
}

// DefaultEntryDay is the boundary weekday on or after today, which is the
// week a new entry most likely belongs to.
func DefaultEntryDay(today time.Time, boundary time.Weekday) time.Time {
	return SnapToWeekday(today, boundary)
}
