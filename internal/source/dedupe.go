package source

import (
	"strconv"

	"github.com/theirongolddev/revtrack/internal/model"
)

func entryKey(e model.Entry) string {
	return model.FormatDay(e.Date) + "|" + strconv.FormatFloat(e.Amount, 'f', -1, 64) + "|" + e.Note
}

// Dedupe drops incoming entries that match an existing entry on day,
// amount and note. Matches are counted per occurrence, so two identical
// rows in a file against one stored entry keep one of them.
func Dedupe(existing, incoming []model.Entry) (fresh []model.Entry, skipped int) {
	seen := make(map[string]int, len(existing))
	for _, e := range existing {
		seen[entryKey(e)]++
	}
	for _, e := range incoming {
		k := entryKey(e)
		if seen[k] > 0 {
			seen[k]--
			skipped++
			continue
		}
		fresh = append(fresh, e)
	}
	return fresh, skipped
}
