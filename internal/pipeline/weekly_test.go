package pipeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/revtrack/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDay(s)
	require.NoError(t, err)
	return d
}

func entry(t *testing.T, id, date string, amount float64) model.Entry {
	t.Helper()
	return model.Entry{ID: id, Date: day(t, date), Amount: amount}
}

func TestSnapToWeekday(t *testing.T) {
	sunday := day(t, "2025-01-05")
	assert.Equal(t, sunday, SnapToWeekday(sunday, time.Sunday))
	assert.Equal(t, day(t, "2025-01-12"), SnapToWeekday(day(t, "2025-01-06"), time.Sunday))
	assert.Equal(t, day(t, "2025-01-12"), SnapToWeekday(day(t, "2025-01-11"), time.Sunday))
	assert.Equal(t, day(t, "2025-01-06"), SnapToWeekday(day(t, "2025-01-01"), time.Monday))
}

func TestAggregateCarriesForward(t *testing.T) {
	entries := []model.Entry{
		entry(t, "a", "2025-01-05", 100),
		entry(t, "b", "2025-01-19", 200),
	}

	points := Aggregate(entries, day(t, "2025-01-19"))

	require.Len(t, points, 3)
	assert.Equal(t, day(t, "2025-01-05"), points[0].Date)
	assert.Equal(t, 100.0, points[0].Value)
	assert.Equal(t, day(t, "2025-01-12"), points[1].Date)
	assert.Equal(t, 100.0, points[1].Value)
	assert.Equal(t, day(t, "2025-01-19"), points[2].Date)
	assert.Equal(t, 300.0, points[2].Value)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, day(t, "2025-01-19")))
	assert.Empty(t, Aggregate([]model.Entry{}, day(t, "2025-01-19")))
}

func TestAggregateSingleEntry(t *testing.T) {
	points := Aggregate([]model.Entry{entry(t, "a", "2025-03-12", 42)}, day(t, "2025-03-12"))
	require.Len(t, points, 1)
	assert.Equal(t, day(t, "2025-03-16"), points[0].Date)
	assert.Equal(t, 42.0, points[0].Value)
}

func TestAggregateExtendsToToday(t *testing.T) {
	entries := []model.Entry{entry(t, "a", "2025-01-01", 100)}

	points := Aggregate(entries, day(t, "2025-02-03"))

	require.Len(t, points, 6)
	assert.Equal(t, day(t, "2025-01-05"), points[0].Date)
	assert.Equal(t, day(t, "2025-02-09"), points[len(points)-1].Date)
	for _, p := range points {
		assert.Equal(t, 100.0, p.Value)
	}
}

func TestAggregateFutureEntryExtendsWindow(t *testing.T) {
	entries := []model.Entry{
		entry(t, "a", "2025-01-05", 10),
		entry(t, "b", "2025-02-02", 5),
	}
	points := Aggregate(entries, day(t, "2025-01-08"))
	require.NotEmpty(t, points)
	assert.Equal(t, day(t, "2025-02-02"), points[len(points)-1].Date)
	assert.Equal(t, 15.0, points[len(points)-1].Value)
}

func TestAggregateDisplayWindowKeepsHistoricTotal(t *testing.T) {
	entries := []model.Entry{
		entry(t, "old", "2024-01-07", 50),
		entry(t, "new", "2025-01-19", 200),
	}

	points := Aggregate(entries, day(t, "2025-01-19"))

	// end - 70 days through end, inclusive.
	require.Len(t, points, 11)
	assert.Equal(t, day(t, "2024-11-10"), points[0].Date)
	assert.Equal(t, 50.0, points[0].Value, "running total must include weeks before the display window")
	assert.Equal(t, 250.0, points[len(points)-1].Value)
}

func TestAggregateWithoutTruncation(t *testing.T) {
	entries := []model.Entry{
		entry(t, "old", "2024-01-07", 50),
		entry(t, "new", "2025-01-19", 200),
	}
	points := AggregateWith(entries, day(t, "2025-01-19"), WeekOptions{Boundary: time.Sunday})
	assert.Equal(t, day(t, "2024-01-07"), points[0].Date)
	assert.Equal(t, 250.0, points[len(points)-1].Value)
}

func TestAggregateMondayBoundary(t *testing.T) {
	entries := []model.Entry{
		entry(t, "a", "2025-01-05", 1), // Sunday -> Monday 6th
		entry(t, "b", "2025-01-06", 2), // Monday stays
	}
	points := AggregateWith(entries, day(t, "2025-01-06"), WeekOptions{Boundary: time.Monday, DisplayDays: 70})
	require.Len(t, points, 1)
	assert.Equal(t, day(t, "2025-01-06"), points[0].Date)
	assert.Equal(t, 3.0, points[0].Value)
}

func randomEntries(seed int64, n int) []model.Entry {
	rng := rand.New(rand.NewSource(seed))
	base := model.Day(2024, time.March, 1)
	entries := make([]model.Entry, n)
	for i := range entries {
		entries[i] = model.Entry{
			ID:     string(rune('a' + i%26)),
			Date:   base.AddDate(0, 0, rng.Intn(400)),
			Amount: float64(rng.Intn(20000)-5000) / 100,
		}
	}
	return entries
}

func TestAggregateInvariants(t *testing.T) {
	today := model.Day(2025, time.February, 14)
	for seed := int64(1); seed <= 20; seed++ {
		entries := randomEntries(seed, 1+int(seed)*3)
		for _, opts := range []WeekOptions{
			DefaultWeekOptions,
			{Boundary: time.Wednesday, DisplayDays: 70},
			{Boundary: time.Saturday},
		} {
			points := AggregateWith(entries, today, opts)
			require.NotEmpty(t, points)

			assert.InDelta(t, Total(entries), points[len(points)-1].Value, 1e-6, "reconciliation seed %d", seed)
			for i, p := range points {
				assert.Equal(t, opts.Boundary, p.Date.Weekday())
				if i > 0 {
					assert.Equal(t, 7, model.DaysBetween(points[i-1].Date, p.Date))
				}
			}
		}
	}
}

func TestAggregateIsPure(t *testing.T) {
	entries := randomEntries(7, 30)
	orig := make([]model.Entry, len(entries))
	copy(orig, entries)
	today := model.Day(2025, time.June, 1)

	first := Aggregate(entries, today)
	second := Aggregate(entries, today)

	assert.Equal(t, first, second)
	assert.Equal(t, orig, entries)
}

func TestBucketWeeks(t *testing.T) {
	buckets := BucketWeeks([]model.Entry{
		entry(t, "a", "2025-01-08", 10),
		entry(t, "b", "2025-01-03", 5),
		entry(t, "c", "2025-01-12", -3),
	}, time.Sunday)

	require.Len(t, buckets, 2)
	assert.Equal(t, model.WeekBucket{WeekStart: day(t, "2025-01-05"), Amount: 5}, buckets[0])
	assert.Equal(t, model.WeekBucket{WeekStart: day(t, "2025-01-12"), Amount: 7}, buckets[1])
}
