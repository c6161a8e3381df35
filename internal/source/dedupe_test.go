package source

import (
	"testing"
	"time"

	"github.com/theirongolddev/revtrack/internal/model"
)

func TestDedupe(t *testing.T) {
	day := model.Day(2025, time.January, 5)
	existing := []model.Entry{
		{ID: "a", Date: day, Amount: 100, Note: "first"},
	}
	incoming := []model.Entry{
		{ID: "x", Date: day, Amount: 100, Note: "first"},
		{ID: "y", Date: day, Amount: 100, Note: "first"},
		{ID: "z", Date: day, Amount: 100, Note: "other"},
		{ID: "w", Date: day.AddDate(0, 0, 1), Amount: 100, Note: "first"},
	}

	fresh, skipped := Dedupe(existing, incoming)
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(fresh) != 3 {
		t.Fatalf("len(fresh) = %d, want 3", len(fresh))
	}
	if fresh[0].ID != "y" || fresh[1].ID != "z" || fresh[2].ID != "w" {
		t.Errorf("fresh = %+v", fresh)
	}

	fresh, skipped = Dedupe(nil, incoming)
	if skipped != 0 || len(fresh) != len(incoming) {
		t.Errorf("empty existing: fresh=%d skipped=%d", len(fresh), skipped)
	}
}
