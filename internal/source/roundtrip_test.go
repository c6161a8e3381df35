package source

import (
	"bytes"
	"testing"
	"time"

	"github.com/theirongolddev/revtrack/internal/export"
	"github.com/theirongolddev/revtrack/internal/model"
)

func TestReadsExportedCSV(t *testing.T) {
	in := []model.Entry{
		{ID: "a", Date: model.Day(2025, time.January, 5), Amount: 100, Note: `said "thanks", paid`},
		{ID: "b", Date: model.Day(2025, time.January, 12), Amount: -30.25, Note: "line one\nline two"},
		{ID: "c", Date: model.Day(2024, time.December, 21), Amount: 200},
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, in); err != nil {
		t.Fatal(err)
	}

	res := ParseCSV(&buf)
	if res.Err != nil || res.ParseErrors != 0 {
		t.Fatalf("Err = %v, ParseErrors = %d", res.Err, res.ParseErrors)
	}
	if len(res.Entries) != len(in) {
		t.Fatalf("len(Entries) = %d, want %d", len(res.Entries), len(in))
	}
	for i, got := range res.Entries {
		want := in[i]
		if !got.Date.Equal(want.Date) || got.Amount != want.Amount || got.Note != want.Note {
			t.Errorf("entry %d = %+v, want date/amount/note of %+v", i, got, want)
		}
	}

	fresh, skipped := Dedupe(in, res.Entries)
	if len(fresh) != 0 || skipped != 3 {
		t.Errorf("re-import of own export: fresh=%d skipped=%d, want 0, 3", len(fresh), skipped)
	}
}
