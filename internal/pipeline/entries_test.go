package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/revtrack/internal/model"
)

func TestSortNewestFirst(t *testing.T) {
	entries := []model.Entry{
		entry(t, "b", "2025-01-05", 1),
		entry(t, "c", "2025-02-02", 2),
		entry(t, "a", "2025-01-05", 3),
	}

	sorted := SortNewestFirst(entries)

	require.Len(t, sorted, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	assert.Equal(t, "b", entries[0].ID, "input must not be reordered")
}

func TestFilterRange(t *testing.T) {
	entries := []model.Entry{
		entry(t, "a", "2025-01-05", 1),
		entry(t, "b", "2025-01-12", 2),
		entry(t, "c", "2025-01-19", 3),
	}

	got := FilterRange(entries, day(t, "2025-01-06"), day(t, "2025-01-19"))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)

	assert.Len(t, FilterRange(entries, day(t, "2025-01-12"), time.Time{}), 2)
	assert.Equal(t, 6.0, Total(entries))
}
